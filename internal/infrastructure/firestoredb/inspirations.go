package firestoredb

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
	"google.golang.org/api/iterator"
)

// InspirationRepo provides typed Firestore operations for the mood board.
type InspirationRepo struct {
	client *firestore.Client
	col    string
}

func NewInspirationRepo(client *firestore.Client, col string) *InspirationRepo {
	return &InspirationRepo{client: client, col: col}
}

func (r *InspirationRepo) Put(ctx context.Context, ins *domain.Inspiration) error {
	if _, err := r.client.Collection(r.col).Doc(ins.InspirationID).Set(ctx, ins); err != nil {
		return fmt.Errorf("put inspiration: %w", err)
	}
	return nil
}

func (r *InspirationRepo) Get(ctx context.Context, inspirationID string) (*domain.Inspiration, error) {
	snap, err := r.client.Collection(r.col).Doc(inspirationID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("inspiration %s: %w", inspirationID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeInspiration(snap)
}

// ListByWedding returns the board newest first.
func (r *InspirationRepo) ListByWedding(ctx context.Context, weddingID string) ([]domain.Inspiration, error) {
	iter := r.client.Collection(r.col).Where(fieldWeddingID, "==", weddingID).Documents(ctx)
	defer iter.Stop()
	var board []domain.Inspiration
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list inspirations: %w", err)
		}
		ins, err := decodeInspiration(snap)
		if err != nil {
			return nil, err
		}
		board = append(board, *ins)
	}
	sort.Slice(board, func(i, j int) bool { return board[i].CreatedAt.After(board[j].CreatedAt) })
	return board, nil
}

func (r *InspirationRepo) Delete(ctx context.Context, inspirationID string) error {
	if _, err := r.client.Collection(r.col).Doc(inspirationID).Delete(ctx); err != nil {
		return fmt.Errorf("delete inspiration %s: %w", inspirationID, err)
	}
	return nil
}

func decodeInspiration(snap *firestore.DocumentSnapshot) (*domain.Inspiration, error) {
	var ins domain.Inspiration
	if err := snap.DataTo(&ins); err != nil {
		return nil, fmt.Errorf("decode inspiration %s: %w", snap.Ref.ID, err)
	}
	ins.InspirationID = snap.Ref.ID
	return &ins, nil
}
