package firestoredb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
	"google.golang.org/api/iterator"
)

// SessionRepo provides typed Firestore operations for the sessions collection.
type SessionRepo struct {
	client *firestore.Client
	col    string
}

func NewSessionRepo(client *firestore.Client, col string) *SessionRepo {
	return &SessionRepo{client: client, col: col}
}

func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	if _, err := r.client.Collection(r.col).Doc(s.SessionID).Set(ctx, s); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	snap, err := r.client.Collection(r.col).Doc(sessionID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return decodeSession(snap)
}

func (r *SessionRepo) Update(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := r.client.Collection(r.col).Doc(sessionID).Update(ctx, ups); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("session not found: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

// DisableByUser turns off every session owned by userID, e.g. after a
// password change. Failures on individual sessions are logged and the first
// one is returned.
func (r *SessionRepo) DisableByUser(ctx context.Context, userID string) error {
	iter := r.client.Collection(r.col).Where(fieldUserID, "==", userID).Documents(ctx)
	defer iter.Stop()
	var firstErr error
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("list sessions by user: %w", err)
		}
		if err := r.Update(ctx, snap.Ref.ID, map[string]interface{}{fieldEnable: false}); err != nil {
			slog.Warn("failed to disable session", "session_id", snap.Ref.ID, "user_id", userID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// GetByRefreshTokenHash looks up a session by the hash of its refresh token.
// Returns ErrUnauthorized when the session exists but is disabled.
func (r *SessionRepo) GetByRefreshTokenHash(ctx context.Context, hash string) (*domain.Session, error) {
	iter := r.client.Collection(r.col).Where(fieldRefreshTokenHash, "==", hash).Limit(1).Documents(ctx)
	defer iter.Stop()
	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s, err := decodeSession(snap)
	if err != nil {
		return nil, err
	}
	if !s.Enable {
		return nil, fmt.Errorf("session disabled: %w", domain.ErrUnauthorized)
	}
	return s, nil
}

// RotateRefreshToken replaces the refresh token hash and expiry on a session.
func (r *SessionRepo) RotateRefreshToken(ctx context.Context, sessionID, newHash string, newExpiry time.Time) error {
	return r.Update(ctx, sessionID, map[string]interface{}{
		fieldRefreshTokenHash: newHash,
		fieldRefreshExpiresAt: newExpiry,
	})
}

func decodeSession(snap *firestore.DocumentSnapshot) (*domain.Session, error) {
	var s domain.Session
	if err := snap.DataTo(&s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", snap.Ref.ID, err)
	}
	s.SessionID = snap.Ref.ID
	return &s, nil
}
