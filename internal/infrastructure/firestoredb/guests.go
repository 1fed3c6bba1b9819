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

// GuestRepo provides typed Firestore operations for the guests collection.
type GuestRepo struct {
	client *firestore.Client
	col    string
}

func NewGuestRepo(client *firestore.Client, col string) *GuestRepo {
	return &GuestRepo{client: client, col: col}
}

func (r *GuestRepo) Put(ctx context.Context, g *domain.Guest) error {
	if _, err := r.client.Collection(r.col).Doc(g.GuestID).Set(ctx, g); err != nil {
		return fmt.Errorf("put guest: %w", err)
	}
	return nil
}

func (r *GuestRepo) Get(ctx context.Context, guestID string) (*domain.Guest, error) {
	snap, err := r.client.Collection(r.col).Doc(guestID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("guest %s: %w", guestID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeGuest(snap)
}

// ListByWedding returns all guests of a wedding ordered by name. Sorting
// happens in memory; combining the equality filter with an order-by would
// require a composite index.
func (r *GuestRepo) ListByWedding(ctx context.Context, weddingID string) ([]domain.Guest, error) {
	iter := r.client.Collection(r.col).Where(fieldWeddingID, "==", weddingID).Documents(ctx)
	defer iter.Stop()
	var guests []domain.Guest
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list guests: %w", err)
		}
		g, err := decodeGuest(snap)
		if err != nil {
			return nil, err
		}
		guests = append(guests, *g)
	}
	sort.Slice(guests, func(i, j int) bool { return guests[i].Name < guests[j].Name })
	return guests, nil
}

func (r *GuestRepo) Update(ctx context.Context, guestID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := r.client.Collection(r.col).Doc(guestID).Update(ctx, ups); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("guest %s: %w", guestID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *GuestRepo) Delete(ctx context.Context, guestID string) error {
	if _, err := r.client.Collection(r.col).Doc(guestID).Delete(ctx); err != nil {
		return fmt.Errorf("delete guest %s: %w", guestID, err)
	}
	return nil
}

func decodeGuest(snap *firestore.DocumentSnapshot) (*domain.Guest, error) {
	var g domain.Guest
	if err := snap.DataTo(&g); err != nil {
		return nil, fmt.Errorf("decode guest %s: %w", snap.Ref.ID, err)
	}
	g.GuestID = snap.Ref.ID
	return &g, nil
}
