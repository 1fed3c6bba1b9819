package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/propositos-api/internal/application/auth"
	"github.com/propositos-api/internal/application/budget"
	"github.com/propositos-api/internal/application/gift"
	"github.com/propositos-api/internal/application/guest"
	"github.com/propositos-api/internal/application/images"
	"github.com/propositos-api/internal/application/inspiration"
	"github.com/propositos-api/internal/application/media"
	"github.com/propositos-api/internal/application/notification"
	"github.com/propositos-api/internal/application/session"
	"github.com/propositos-api/internal/application/trousseau"
	"github.com/propositos-api/internal/application/user"
	"github.com/propositos-api/internal/application/wedding"
	"github.com/propositos-api/internal/config"
	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/transport/http/handler"
	appmiddleware "github.com/propositos-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second with a burst of 10 on sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	refreshTTL := time.Duration(cfg.RefreshTokenExpiryDays) * 24 * time.Hour
	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo: deps.SessionRepo,
		UserRepo:    deps.UserRepo,
		Google:      deps.Google,
		JWT:         deps.JWTProvider,
		RefreshTTL:  refreshTTL,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		WeddingRepo: deps.WeddingRepo,
		SessionRepo: deps.SessionRepo,
		Sessions:    sessionSvc,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		VerificationRepo: deps.VerificationRepo,
		UserRepo:         deps.UserRepo,
		SessionRepo:      deps.SessionRepo,
		Sessions:         sessionSvc,
		Mailer:           deps.Mailer,
	})
	weddingSvc := wedding.NewService(deps.WeddingRepo, deps.UserRepo)
	guestSvc := guest.NewService(guest.ServiceDeps{
		GuestRepo:   deps.GuestRepo,
		WeddingRepo: deps.WeddingRepo,
		Mailer:      deps.Mailer,
		SMS:         deps.SMSSender,
		RSVPBaseURL: cfg.PublicAppURL,
	})
	budgetSvc := budget.NewService(deps.BudgetRepo)
	giftSvc := gift.NewService(deps.GiftRepo, deps.WeddingRepo)
	trousseauSvc := trousseau.NewService(deps.TrousseauRepo)
	inspirationSvc := inspiration.NewService(deps.InspirationRepo)
	notifSvc := notification.NewService(notification.ServiceDeps{
		BroadcastRepo: deps.BroadcastRepo,
		CampaignRepo:  deps.CampaignRepo,
		StateRepo:     deps.StateRepo,
		UserRepo:      deps.UserRepo,
		WeddingRepo:   deps.WeddingRepo,
		Push:          deps.Push,
	})
	mediaSvc := media.NewService()
	imageSvc := images.NewService(deps.SettingsRepo, deps.Unsplash)

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(sessionSvc)
	userH := handler.NewUserHandler(userSvc)
	pwH := handler.NewPasswordRecoveryHandler(authSvc)
	weddingH := handler.NewWeddingHandler(weddingSvc)
	guestH := handler.NewGuestHandler(guestSvc)
	budgetH := handler.NewBudgetHandler(budgetSvc)
	giftH := handler.NewGiftHandler(giftSvc)
	trousseauH := handler.NewTrousseauHandler(trousseauSvc)
	inspirationH := handler.NewInspirationHandler(inspirationSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	streamH := handler.NewStreamHandler(notifSvc, deps.JWTProvider)
	mediaH := handler.NewMediaHandler(mediaSvc)
	imageH := handler.NewImageHandler(imageSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/sessions/google", sessionH.LoginWithGoogle)
		r.Post("/sessions/refresh", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.With(sensitiveRL.Limit).Post("/password-recovery/request", pwH.Request)
		r.With(sensitiveRL.Limit).Post("/password-recovery/reset", pwH.Reset)

		// Guests land here from invitation and registry links, no account
		// involved.
		r.Get("/public/rsvp/{id}", guestH.GetForRSVP)
		r.Put("/public/rsvp/{id}", guestH.RSVP)
		r.Get("/public/registry/{id}", giftH.PublicList)
		r.With(sensitiveRL.Limit).Post("/public/gifts/{id}/claim", giftH.Claim)

		// The stream authenticates itself from the query string, see
		// handler.StreamHandler.
		r.Get("/notifications/stream", streamH.Stream)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/users/me", userH.Me)
			r.Put("/users/me", userH.UpdateMe)
			r.Put("/users/me/password", userH.ChangePassword)
			r.Delete("/users/me", userH.DeleteMe)

			r.Get("/notifications", notifH.Feed)
			r.Get("/notifications/unread-count", notifH.UnreadCount)
			r.Put("/notifications/read", notifH.MarkAllRead)
			r.Put("/notifications/{id}/read", notifH.MarkRead)
			r.Delete("/notifications/{id}", notifH.Delete)

			r.Get("/wedding", weddingH.Get)
			r.Get("/wedding/members", weddingH.Members)

			// Couple-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleBride, domain.RoleGroom))

				r.Put("/wedding", weddingH.Update)

				r.Get("/guests", guestH.List)
				r.Get("/guests/summary", guestH.Summary)
				r.Post("/guests", guestH.Create)
				r.Put("/guests/{id}", guestH.Update)
				r.Delete("/guests/{id}", guestH.Delete)
				r.Post("/guests/{id}/invite", guestH.Invite)
				r.Post("/guests/{id}/remind", guestH.Remind)

				r.Get("/budget", budgetH.List)
				r.Get("/budget/summary", budgetH.Summary)
				r.Post("/budget", budgetH.Create)
				r.Put("/budget/{id}", budgetH.Update)
				r.Delete("/budget/{id}", budgetH.Delete)

				r.Get("/gifts", giftH.List)
				r.Post("/gifts", giftH.Create)
				r.Put("/gifts/{id}", giftH.Update)
				r.Delete("/gifts/{id}", giftH.Delete)
				r.Post("/gifts/{id}/thank", giftH.Thank)

				r.Get("/trousseau", trousseauH.List)
				r.Get("/trousseau/progress", trousseauH.Progress)
				r.Post("/trousseau", trousseauH.Create)
				r.Put("/trousseau/{id}", trousseauH.Update)
				r.Put("/trousseau/{id}/toggle", trousseauH.Toggle)
				r.Delete("/trousseau/{id}", trousseauH.Delete)

				r.Get("/inspirations", inspirationH.List)
				r.Post("/inspirations", inspirationH.Create)
				r.Delete("/inspirations/{id}", inspirationH.Delete)

				r.Post("/media/process", mediaH.Process)
				r.Get("/images/search", imageH.Search)
			})

			// Admin-only routes
			r.Route("/admin", func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/broadcasts", notifH.CreateBroadcast)
				r.Get("/broadcasts", notifH.ListBroadcasts)
				r.Delete("/broadcasts/{id}", notifH.DeleteBroadcast)

				r.Post("/campaigns", notifH.CreateCampaign)
				r.Get("/campaigns", notifH.ListCampaigns)
				r.Put("/campaigns/{id}", notifH.UpdateCampaign)
				r.Delete("/campaigns/{id}", notifH.DeleteCampaign)
			})
		})
	})

	return r
}
