package firestoredb

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
)

// WeddingRepo provides typed Firestore operations for the weddings collection.
type WeddingRepo struct {
	client *firestore.Client
	col    string
}

func NewWeddingRepo(client *firestore.Client, col string) *WeddingRepo {
	return &WeddingRepo{client: client, col: col}
}

func (r *WeddingRepo) Put(ctx context.Context, w *domain.Wedding) error {
	if _, err := r.client.Collection(r.col).Doc(w.WeddingID).Set(ctx, w); err != nil {
		return fmt.Errorf("put wedding: %w", err)
	}
	return nil
}

func (r *WeddingRepo) Get(ctx context.Context, weddingID string) (*domain.Wedding, error) {
	snap, err := r.client.Collection(r.col).Doc(weddingID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("wedding %s: %w", weddingID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeWedding(snap)
}

func (r *WeddingRepo) Update(ctx context.Context, weddingID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := r.client.Collection(r.col).Doc(weddingID).Update(ctx, ups); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("wedding %s: %w", weddingID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func decodeWedding(snap *firestore.DocumentSnapshot) (*domain.Wedding, error) {
	var w domain.Wedding
	if err := snap.DataTo(&w); err != nil {
		return nil, fmt.Errorf("decode wedding %s: %w", snap.Ref.ID, err)
	}
	w.WeddingID = snap.Ref.ID
	return &w, nil
}
