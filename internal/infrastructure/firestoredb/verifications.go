package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
)

// VerificationRepo stores password recovery codes, one document per user.
type VerificationRepo struct {
	client *firestore.Client
	col    string
}

func NewVerificationRepo(client *firestore.Client, col string) *VerificationRepo {
	return &VerificationRepo{client: client, col: col}
}

func (r *VerificationRepo) Put(ctx context.Context, v *domain.UserVerification) error {
	if _, err := r.client.Collection(r.col).Doc(v.UserID).Set(ctx, v); err != nil {
		return fmt.Errorf("put verification: %w", err)
	}
	return nil
}

func (r *VerificationRepo) Get(ctx context.Context, userID string) (*domain.UserVerification, error) {
	snap, err := r.client.Collection(r.col).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	var v domain.UserVerification
	if err := snap.DataTo(&v); err != nil {
		return nil, fmt.Errorf("decode verification %s: %w", snap.Ref.ID, err)
	}
	v.UserID = snap.Ref.ID
	return &v, nil
}

func (r *VerificationRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.client.Collection(r.col).Doc(userID).Delete(ctx); err != nil {
		return fmt.Errorf("delete verification: %w", err)
	}
	return nil
}
