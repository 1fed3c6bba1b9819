package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propositos-api/internal/config"
	"github.com/propositos-api/internal/infrastructure/fcm"
	"github.com/propositos-api/internal/infrastructure/firestoredb"
	"github.com/propositos-api/internal/infrastructure/google"
	jwtinfra "github.com/propositos-api/internal/infrastructure/jwt"
	"github.com/propositos-api/internal/infrastructure/smtp"
	"github.com/propositos-api/internal/infrastructure/sns"
	"github.com/propositos-api/internal/infrastructure/unsplash"
	transporthttp "github.com/propositos-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	app, err := firestoredb.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	client, err := firestoredb.NewClient(ctx, app)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer client.Close()

	// Baseline documents: settings doc, admin promotion. Idempotent.
	firestoredb.Seed(ctx, client, cfg)

	// JWT provider is optional; without keys the API serves public routes only.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender is optional.
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	// FCM publisher is optional; broadcasts stay feed-only without it.
	push, err := fcm.NewPublisher(ctx, app, cfg.FCMTopicPrefix)
	if err != nil {
		log.Printf("WARN: FCM publisher not available: %v", err)
	}

	cols := cfg.Collections
	deps := &transporthttp.Deps{
		UserRepo:         firestoredb.NewUserRepo(client, cols.Users),
		SessionRepo:      firestoredb.NewSessionRepo(client, cols.Sessions),
		WeddingRepo:      firestoredb.NewWeddingRepo(client, cols.Weddings),
		GuestRepo:        firestoredb.NewGuestRepo(client, cols.Guests),
		BudgetRepo:       firestoredb.NewBudgetRepo(client, cols.BudgetItems),
		GiftRepo:         firestoredb.NewGiftRepo(client, cols.Gifts),
		TrousseauRepo:    firestoredb.NewTrousseauRepo(client, cols.TrousseauItems),
		InspirationRepo:  firestoredb.NewInspirationRepo(client, cols.Inspirations),
		BroadcastRepo:    firestoredb.NewBroadcastRepo(client, cols.Broadcasts),
		CampaignRepo:     firestoredb.NewCampaignRepo(client, cols.Campaigns),
		StateRepo:        firestoredb.NewStateRepo(client, cols.Users, cols.NotificationStates),
		VerificationRepo: firestoredb.NewVerificationRepo(client, cols.Verifications),
		SettingsRepo:     firestoredb.NewSettingsRepo(client, cols.Settings),
		JWTProvider:      jwtProvider,
		Google:           google.NewVerifier(cfg.GoogleClientID),
		Mailer:           mailer,
		SMSSender:        smsSender,
		Push:             push,
		Unsplash:         unsplash.NewClient(),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		// The notification stream holds its connection open far beyond any
		// write timeout, so the server-wide one stays off and plain handlers
		// rely on their own deadlines.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
