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

// TrousseauRepo provides typed Firestore operations for trousseau items.
type TrousseauRepo struct {
	client *firestore.Client
	col    string
}

func NewTrousseauRepo(client *firestore.Client, col string) *TrousseauRepo {
	return &TrousseauRepo{client: client, col: col}
}

func (r *TrousseauRepo) Put(ctx context.Context, item *domain.TrousseauItem) error {
	if _, err := r.client.Collection(r.col).Doc(item.ItemID).Set(ctx, item); err != nil {
		return fmt.Errorf("put trousseau item: %w", err)
	}
	return nil
}

func (r *TrousseauRepo) Get(ctx context.Context, itemID string) (*domain.TrousseauItem, error) {
	snap, err := r.client.Collection(r.col).Doc(itemID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("trousseau item %s: %w", itemID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeTrousseauItem(snap)
}

// ListByWedding returns all items of a wedding grouped by room then name.
func (r *TrousseauRepo) ListByWedding(ctx context.Context, weddingID string) ([]domain.TrousseauItem, error) {
	iter := r.client.Collection(r.col).Where(fieldWeddingID, "==", weddingID).Documents(ctx)
	defer iter.Stop()
	var items []domain.TrousseauItem
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list trousseau items: %w", err)
		}
		item, err := decodeTrousseauItem(snap)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Room != items[j].Room {
			return items[i].Room < items[j].Room
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *TrousseauRepo) Update(ctx context.Context, itemID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := r.client.Collection(r.col).Doc(itemID).Update(ctx, ups); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("trousseau item %s: %w", itemID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *TrousseauRepo) Delete(ctx context.Context, itemID string) error {
	if _, err := r.client.Collection(r.col).Doc(itemID).Delete(ctx); err != nil {
		return fmt.Errorf("delete trousseau item %s: %w", itemID, err)
	}
	return nil
}

func decodeTrousseauItem(snap *firestore.DocumentSnapshot) (*domain.TrousseauItem, error) {
	var item domain.TrousseauItem
	if err := snap.DataTo(&item); err != nil {
		return nil, fmt.Errorf("decode trousseau item %s: %w", snap.Ref.ID, err)
	}
	item.ItemID = snap.Ref.ID
	return &item, nil
}
