package firestoredb

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
	"google.golang.org/api/iterator"
)

// UserRepo provides typed Firestore operations for the users collection.
type UserRepo struct {
	client *firestore.Client
	col    string
}

func NewUserRepo(client *firestore.Client, col string) *UserRepo {
	return &UserRepo{client: client, col: col}
}

func (r *UserRepo) Put(ctx context.Context, u *domain.User) error {
	if _, err := r.client.Collection(r.col).Doc(u.UserID).Set(ctx, u); err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	snap, err := r.client.Collection(r.col).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeUser(snap)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.queryOne(ctx, fieldEmail, email)
}

func (r *UserRepo) GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error) {
	return r.queryOne(ctx, fieldGoogleSub, sub)
}

func (r *UserRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := r.client.Collection(r.col).Doc(userID).Update(ctx, ups); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *UserRepo) SoftDelete(ctx context.Context, userID string) error {
	return r.Update(ctx, userID, map[string]interface{}{fieldEnable: false})
}

// ListByWedding returns all members of a wedding, couple and guests alike.
func (r *UserRepo) ListByWedding(ctx context.Context, weddingID string) ([]domain.User, error) {
	iter := r.client.Collection(r.col).Where(fieldWeddingID, "==", weddingID).Documents(ctx)
	defer iter.Stop()
	var users []domain.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list users by wedding: %w", err)
		}
		u, err := decodeUser(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (r *UserRepo) queryOne(ctx context.Context, field, value string) (*domain.User, error) {
	iter := r.client.Collection(r.col).Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()
	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decodeUser(snap)
}

func decodeUser(snap *firestore.DocumentSnapshot) (*domain.User, error) {
	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
	}
	u.UserID = snap.Ref.ID
	return &u, nil
}
