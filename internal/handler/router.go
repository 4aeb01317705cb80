package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nontawatz/mini-commerce-api/internal/config"
	"github.com/nontawatz/mini-commerce-api/shared/auth"
	"github.com/nontawatz/mini-commerce-api/shared/middleware"
)

// Handlers groups the handler set the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	PasswordReset *PasswordResetHandler
	Category      *CategoryHandler
	Product       *ProductHandler
}

// NewRouter wires all routes. Mutating catalog routes sit behind the bearer
// middleware; everything passes through the caller-class rate limiter.
func NewRouter(cfg *config.Config, jwtAuth auth.JWTAuthenticator, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RateLimitByCallerClass(cfg.RateLimit))

	authenticate := middleware.Authenticate(jwtAuth)

	r.Post("/signup", h.Auth.SignUp)
	r.Post("/signin", h.Auth.SignIn)
	r.Post("/forgot-password", h.PasswordReset.ForgotPassword)
	r.Post("/reset-password", h.PasswordReset.ResetPassword)

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Category.List)
		r.Get("/{id}", h.Category.Get)
		r.Post("/", h.Category.Create)
		r.Put("/{id}", h.Category.Update)
		r.Delete("/{id}", h.Category.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.Product.List)
		r.Get("/search", h.Product.Search)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Product.Create)
			r.Delete("/{id}", h.Product.Delete)
		})
	})

	fileServer := http.FileServer(http.Dir(cfg.UploadDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	return r
}
