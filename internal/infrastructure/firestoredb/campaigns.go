package firestoredb

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
	"google.golang.org/api/iterator"
)

// CampaignRepo provides typed Firestore operations for campaign rules.
type CampaignRepo struct {
	client *firestore.Client
	col    string
}

func NewCampaignRepo(client *firestore.Client, col string) *CampaignRepo {
	return &CampaignRepo{client: client, col: col}
}

// Create persists the rule and reads it back so the caller sees the
// server-assigned createdAt.
func (r *CampaignRepo) Create(ctx context.Context, c *domain.CampaignRule) error {
	ref := r.client.Collection(r.col).Doc(c.CampaignID)
	if _, err := ref.Set(ctx, c); err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return fmt.Errorf("read back campaign: %w", err)
	}
	nc, err := decodeCampaign(snap)
	if err != nil {
		return err
	}
	*c = *nc
	return nil
}

func (r *CampaignRepo) Get(ctx context.Context, campaignID string) (*domain.CampaignRule, error) {
	snap, err := r.client.Collection(r.col).Doc(campaignID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("campaign %s: %w", campaignID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeCampaign(snap)
}

// List returns all rules, newest first, active or not. The resolver ignores
// inactive ones; the admin screen shows them all.
func (r *CampaignRepo) List(ctx context.Context) ([]domain.CampaignRule, error) {
	iter := r.client.Collection(r.col).OrderBy(fieldCreatedAt, firestore.Desc).Documents(ctx)
	defer iter.Stop()
	var out []domain.CampaignRule
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list campaigns: %w", err)
		}
		c, err := decodeCampaign(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *CampaignRepo) Update(ctx context.Context, campaignID string, updates map[string]interface{}) error {
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := r.client.Collection(r.col).Doc(campaignID).Update(ctx, ups); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("campaign %s: %w", campaignID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *CampaignRepo) Delete(ctx context.Context, campaignID string) error {
	if _, err := r.client.Collection(r.col).Doc(campaignID).Delete(ctx); err != nil {
		return fmt.Errorf("delete campaign %s: %w", campaignID, err)
	}
	return nil
}

// Watch streams the full rule list on every change until ctx ends, keeping
// only the latest snapshot for a slow consumer.
func (r *CampaignRepo) Watch(ctx context.Context) <-chan []domain.CampaignRule {
	ch := make(chan []domain.CampaignRule, 1)
	go func() {
		defer close(ch)
		snaps := r.client.Collection(r.col).OrderBy(fieldCreatedAt, firestore.Desc).Snapshots(ctx)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if !isCanceled(err) {
					slog.Warn("campaign watch stopped", "err", err)
				}
				return
			}
			docs, err := qs.Documents.GetAll()
			if err != nil {
				slog.Warn("campaign watch read failed", "err", err)
				continue
			}
			out := make([]domain.CampaignRule, 0, len(docs))
			for _, d := range docs {
				c, err := decodeCampaign(d)
				if err != nil {
					slog.Warn("campaign watch decode failed", "err", err)
					continue
				}
				out = append(out, *c)
			}
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- out:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func decodeCampaign(snap *firestore.DocumentSnapshot) (*domain.CampaignRule, error) {
	var c domain.CampaignRule
	if err := snap.DataTo(&c); err != nil {
		return nil, fmt.Errorf("decode campaign %s: %w", snap.Ref.ID, err)
	}
	c.CampaignID = snap.Ref.ID
	return &c, nil
}
