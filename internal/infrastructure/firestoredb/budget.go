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

// BudgetRepo provides typed Firestore operations for budget items.
type BudgetRepo struct {
	client *firestore.Client
	col    string
}

func NewBudgetRepo(client *firestore.Client, col string) *BudgetRepo {
	return &BudgetRepo{client: client, col: col}
}

func (r *BudgetRepo) Put(ctx context.Context, item *domain.BudgetItem) error {
	if _, err := r.client.Collection(r.col).Doc(item.ItemID).Set(ctx, item); err != nil {
		return fmt.Errorf("put budget item: %w", err)
	}
	return nil
}

func (r *BudgetRepo) Get(ctx context.Context, itemID string) (*domain.BudgetItem, error) {
	snap, err := r.client.Collection(r.col).Doc(itemID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("budget item %s: %w", itemID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeBudgetItem(snap)
}

// ListByWedding returns all items of a wedding grouped by category then name.
func (r *BudgetRepo) ListByWedding(ctx context.Context, weddingID string) ([]domain.BudgetItem, error) {
	iter := r.client.Collection(r.col).Where(fieldWeddingID, "==", weddingID).Documents(ctx)
	defer iter.Stop()
	var items []domain.BudgetItem
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list budget items: %w", err)
		}
		item, err := decodeBudgetItem(snap)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *BudgetRepo) Update(ctx context.Context, itemID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := r.client.Collection(r.col).Doc(itemID).Update(ctx, ups); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("budget item %s: %w", itemID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *BudgetRepo) Delete(ctx context.Context, itemID string) error {
	if _, err := r.client.Collection(r.col).Doc(itemID).Delete(ctx); err != nil {
		return fmt.Errorf("delete budget item %s: %w", itemID, err)
	}
	return nil
}

func decodeBudgetItem(snap *firestore.DocumentSnapshot) (*domain.BudgetItem, error) {
	var item domain.BudgetItem
	if err := snap.DataTo(&item); err != nil {
		return nil, fmt.Errorf("decode budget item %s: %w", snap.Ref.ID, err)
	}
	item.ItemID = snap.Ref.ID
	return &item, nil
}
