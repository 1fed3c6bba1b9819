package firestoredb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
	"google.golang.org/api/iterator"
)

// GiftRepo provides typed Firestore operations for the gift registry.
type GiftRepo struct {
	client *firestore.Client
	col    string
}

func NewGiftRepo(client *firestore.Client, col string) *GiftRepo {
	return &GiftRepo{client: client, col: col}
}

func (r *GiftRepo) Put(ctx context.Context, g *domain.Gift) error {
	if _, err := r.client.Collection(r.col).Doc(g.GiftID).Set(ctx, g); err != nil {
		return fmt.Errorf("put gift: %w", err)
	}
	return nil
}

func (r *GiftRepo) Get(ctx context.Context, giftID string) (*domain.Gift, error) {
	snap, err := r.client.Collection(r.col).Doc(giftID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("gift %s: %w", giftID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeGift(snap)
}

// ListByWedding returns the registry ordered by name.
func (r *GiftRepo) ListByWedding(ctx context.Context, weddingID string) ([]domain.Gift, error) {
	iter := r.client.Collection(r.col).Where(fieldWeddingID, "==", weddingID).Documents(ctx)
	defer iter.Stop()
	var gifts []domain.Gift
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list gifts: %w", err)
		}
		g, err := decodeGift(snap)
		if err != nil {
			return nil, err
		}
		gifts = append(gifts, *g)
	}
	sort.Slice(gifts, func(i, j int) bool { return gifts[i].Name < gifts[j].Name })
	return gifts, nil
}

func (r *GiftRepo) Update(ctx context.Context, giftID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := r.client.Collection(r.col).Doc(giftID).Update(ctx, ups); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("gift %s: %w", giftID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *GiftRepo) Delete(ctx context.Context, giftID string) error {
	if _, err := r.client.Collection(r.col).Doc(giftID).Delete(ctx); err != nil {
		return fmt.Errorf("delete gift %s: %w", giftID, err)
	}
	return nil
}

// Claim records the claimant inside a transaction so two guests racing for
// the same gift cannot both win. Returns ErrConflict for the loser.
func (r *GiftRepo) Claim(ctx context.Context, giftID, claimantName string, at time.Time) error {
	ref := r.client.Collection(r.col).Doc(giftID)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("gift %s: %w", giftID, domain.ErrNotFound)
			}
			return err
		}
		g, err := decodeGift(snap)
		if err != nil {
			return err
		}
		if g.ClaimedByName != "" {
			return fmt.Errorf("gift already claimed: %w", domain.ErrConflict)
		}
		return tx.Update(ref, []firestore.Update{
			{Path: fieldClaimedByName, Value: claimantName},
			{Path: fieldClaimedAt, Value: at},
			{Path: fieldUpdatedAt, Value: at},
		})
	})
}

func decodeGift(snap *firestore.DocumentSnapshot) (*domain.Gift, error) {
	var g domain.Gift
	if err := snap.DataTo(&g); err != nil {
		return nil, fmt.Errorf("decode gift %s: %w", snap.Ref.ID, err)
	}
	g.GiftID = snap.Ref.ID
	return &g, nil
}
