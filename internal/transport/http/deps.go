package http

import (
	"github.com/propositos-api/internal/infrastructure/fcm"
	"github.com/propositos-api/internal/infrastructure/firestoredb"
	"github.com/propositos-api/internal/infrastructure/google"
	jwtinfra "github.com/propositos-api/internal/infrastructure/jwt"
	"github.com/propositos-api/internal/infrastructure/smtp"
	"github.com/propositos-api/internal/infrastructure/sns"
	"github.com/propositos-api/internal/infrastructure/unsplash"
)

// Deps holds all infrastructure dependencies for the router. Everything here
// is constructed once in main and shared by the services.
type Deps struct {
	UserRepo         *firestoredb.UserRepo
	SessionRepo      *firestoredb.SessionRepo
	WeddingRepo      *firestoredb.WeddingRepo
	GuestRepo        *firestoredb.GuestRepo
	BudgetRepo       *firestoredb.BudgetRepo
	GiftRepo         *firestoredb.GiftRepo
	TrousseauRepo    *firestoredb.TrousseauRepo
	InspirationRepo  *firestoredb.InspirationRepo
	BroadcastRepo    *firestoredb.BroadcastRepo
	CampaignRepo     *firestoredb.CampaignRepo
	StateRepo        *firestoredb.StateRepo
	VerificationRepo *firestoredb.VerificationRepo
	SettingsRepo     *firestoredb.SettingsRepo

	JWTProvider *jwtinfra.Provider
	Google      *google.Verifier
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	// Push may be nil when FCM credentials are absent; broadcasts then skip
	// the push fan-out and stay feed-only.
	Push     *fcm.Publisher
	Unsplash *unsplash.Client
}
