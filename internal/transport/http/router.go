package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/otp-auth-api/internal/application/otp"
	"github.com/otp-auth-api/internal/config"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
	"github.com/otp-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/otp-auth-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OtpRepo     OtpRepository
	UserRepo    UserRepository
	Notifier    Notifier
	JWTProvider *jwtinfra.Provider
	AfterSend   otp.AfterSendFunc
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — the OTP endpoints are the only
	// brute-force surface this service exposes.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(otp.ServiceDeps{
		OtpRepo:   deps.OtpRepo,
		UserRepo:  deps.UserRepo,
		Notifier:  deps.Notifier,
		Signer:    deps.JWTProvider,
		AfterSend: deps.AfterSend,
		OTPLength: cfg.OTPLength,
		OTPTTL:    cfg.OTPExpiry,
		TokenTTL:  cfg.TokenExpiry,
	})

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOtpHandler(otpSvc)
	sessionH := handler.NewSessionHandler(deps.UserRepo)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/otp/send", otpH.Send)
		r.With(sensitiveRL.Limit).Post("/otp/login", otpH.Login)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))
			r.Get("/sessions", sessionH.GetCurrent)
		})
	})

	return r
}
