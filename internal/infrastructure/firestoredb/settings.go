package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
)

// settingsDocID is the single well-known document holding app configuration.
const settingsDocID = "app"

// SettingsRepo reads the operator-managed settings document.
type SettingsRepo struct {
	client *firestore.Client
	col    string
}

func NewSettingsRepo(client *firestore.Client, col string) *SettingsRepo {
	return &SettingsRepo{client: client, col: col}
}

func (r *SettingsRepo) Get(ctx context.Context) (*domain.AppSettings, error) {
	snap, err := r.client.Collection(r.col).Doc(settingsDocID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("settings document: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	var s domain.AppSettings
	if err := snap.DataTo(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

// EnsureExists creates an empty settings document when none is present, so
// operators always have a doc to edit. Existing values are never touched.
func (r *SettingsRepo) EnsureExists(ctx context.Context) error {
	_, err := r.client.Collection(r.col).Doc(settingsDocID).Create(ctx, map[string]interface{}{})
	if err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("create settings document: %w", err)
	}
	return nil
}
