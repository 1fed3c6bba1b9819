package firestoredb

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
	"google.golang.org/api/iterator"
)

// BroadcastRepo provides typed Firestore operations for admin broadcasts.
type BroadcastRepo struct {
	client *firestore.Client
	col    string
}

func NewBroadcastRepo(client *firestore.Client, col string) *BroadcastRepo {
	return &BroadcastRepo{client: client, col: col}
}

// Create persists the broadcast and reads it back so the caller sees the
// server-assigned createdAt.
func (r *BroadcastRepo) Create(ctx context.Context, b *domain.Broadcast) error {
	ref := r.client.Collection(r.col).Doc(b.BroadcastID)
	if _, err := ref.Set(ctx, b); err != nil {
		return fmt.Errorf("create broadcast: %w", err)
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return fmt.Errorf("read back broadcast: %w", err)
	}
	nb, err := decodeBroadcast(snap)
	if err != nil {
		return err
	}
	*b = *nb
	return nil
}

func (r *BroadcastRepo) Get(ctx context.Context, broadcastID string) (*domain.Broadcast, error) {
	snap, err := r.client.Collection(r.col).Doc(broadcastID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("broadcast %s: %w", broadcastID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeBroadcast(snap)
}

// List returns all broadcasts, newest first.
func (r *BroadcastRepo) List(ctx context.Context) ([]domain.Broadcast, error) {
	iter := r.client.Collection(r.col).OrderBy(fieldCreatedAt, firestore.Desc).Documents(ctx)
	defer iter.Stop()
	var out []domain.Broadcast
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list broadcasts: %w", err)
		}
		b, err := decodeBroadcast(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

// Delete removes a broadcast for everyone. Per-user overlay docs for the id
// become orphans and are simply never matched again.
func (r *BroadcastRepo) Delete(ctx context.Context, broadcastID string) error {
	if _, err := r.client.Collection(r.col).Doc(broadcastID).Delete(ctx); err != nil {
		return fmt.Errorf("delete broadcast %s: %w", broadcastID, err)
	}
	return nil
}

// Watch streams the full broadcast list on every change until ctx ends. The
// channel is closed when the listener stops. Only the latest snapshot is kept
// for a slow consumer.
func (r *BroadcastRepo) Watch(ctx context.Context) <-chan []domain.Broadcast {
	ch := make(chan []domain.Broadcast, 1)
	go func() {
		defer close(ch)
		snaps := r.client.Collection(r.col).OrderBy(fieldCreatedAt, firestore.Desc).Snapshots(ctx)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if !isCanceled(err) {
					slog.Warn("broadcast watch stopped", "err", err)
				}
				return
			}
			docs, err := qs.Documents.GetAll()
			if err != nil {
				slog.Warn("broadcast watch read failed", "err", err)
				continue
			}
			out := make([]domain.Broadcast, 0, len(docs))
			for _, d := range docs {
				b, err := decodeBroadcast(d)
				if err != nil {
					slog.Warn("broadcast watch decode failed", "err", err)
					continue
				}
				out = append(out, *b)
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

func decodeBroadcast(snap *firestore.DocumentSnapshot) (*domain.Broadcast, error) {
	var b domain.Broadcast
	if err := snap.DataTo(&b); err != nil {
		return nil, fmt.Errorf("decode broadcast %s: %w", snap.Ref.ID, err)
	}
	b.BroadcastID = snap.Ref.ID
	return &b, nil
}
