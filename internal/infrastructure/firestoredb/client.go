package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/propositos-api/internal/config"
	"google.golang.org/api/option"
)

// NewApp initialises the Firebase app shared by Firestore and Cloud Messaging.
// When cfg.FirebaseCredentialsFile is empty, Application Default Credentials
// apply, which is what production on GCP uses.
func NewApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	return app, nil
}

// NewClient opens the Firestore client backing all repositories. The client
// honours FIRESTORE_EMULATOR_HOST, so local development needs no credentials.
func NewClient(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}
	return client, nil
}
