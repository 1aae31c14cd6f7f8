package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/PremPrakashCodes/inboxpilot/internal/application/account"
	"github.com/PremPrakashCodes/inboxpilot/internal/application/apikey"
	"github.com/PremPrakashCodes/inboxpilot/internal/application/otp"
	"github.com/PremPrakashCodes/inboxpilot/internal/application/user"
	"github.com/PremPrakashCodes/inboxpilot/internal/config"
	"github.com/PremPrakashCodes/inboxpilot/internal/transport/http/handler"
	appmiddleware "github.com/PremPrakashCodes/inboxpilot/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	userSvc := user.NewService(deps.UserRepo)
	otpSvc := otp.NewService(otp.Deps{
		Store:      deps.OTPRepo,
		Mailer:     deps.Mailer,
		From:       cfg.EmailFrom,
		TTLSeconds: cfg.Credentials.OTPTTLSeconds,
	})
	keySvc := apikey.NewService(apikey.Deps{
		Store:  deps.APIKeyRepo,
		Mailer: deps.Mailer,
		From:   cfg.EmailFrom,
		Creds:  cfg.Credentials,
	})
	accountSvc := account.NewService(deps.AccountRepo, deps.GoogleOAuth)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(userSvc, otpSvc, keySvc)
	keyH := handler.NewKeyHandler(keySvc)
	accountH := handler.NewAccountHandler(accountSvc)

	authMw := appmiddleware.Auth(keySvc)

	// 5 requests/second, burst of 10 — applied to the public credential
	// endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/verify", authH.Verify)
		r.Get("/auth/gmail/callback", accountH.GmailCallback)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/keys", keyH.Create)
			r.Get("/keys", keyH.List)
			r.Patch("/keys", keyH.Update)
			r.Delete("/keys", keyH.Delete)

			r.Get("/accounts", accountH.List)
			r.Get("/connect/gmail", accountH.ConnectGmail)
		})
	})

	return r
}
