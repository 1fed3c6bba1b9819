package firestoredb

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/config"
	"github.com/propositos-api/internal/domain"
)

// Seed ensures baseline documents exist. Safe to call on every startup: it
// creates the settings document when missing and, when cfg.AdminEmail is set,
// promotes that already-registered account to admin. It never creates
// accounts or overwrites operator edits.
func Seed(ctx context.Context, client *firestore.Client, cfg *config.Config) {
	settings := NewSettingsRepo(client, cfg.Collections.Settings)
	if err := settings.EnsureExists(ctx); err != nil {
		slog.Warn("could not seed settings document", "err", err)
	}

	if cfg.AdminEmail == "" {
		return
	}
	users := NewUserRepo(client, cfg.Collections.Users)
	u, err := users.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Info("admin account not registered yet, skipping promotion", "email", cfg.AdminEmail)
		} else {
			slog.Warn("could not look up admin account", "err", err)
		}
		return
	}
	if u.Role == domain.RoleAdmin {
		return
	}
	if err := users.Update(ctx, u.UserID, map[string]interface{}{fieldRole: domain.RoleAdmin}); err != nil {
		slog.Warn("could not promote admin account", "user_id", u.UserID, "err", err)
		return
	}
	slog.Info("promoted account to admin", "user_id", u.UserID)
}
