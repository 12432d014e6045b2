package api

import (
	"net/http"

	"github.com/deepakUNO/Kindle-Server/internal/api/handlers"
	"github.com/deepakUNO/Kindle-Server/internal/api/middleware"
	"github.com/deepakUNO/Kindle-Server/internal/config"
	"github.com/deepakUNO/Kindle-Server/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	bookHandler := handlers.NewBookHandler(services.Book)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected user routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/books", func(r chi.Router) {
			// Public book routes
			r.Get("/", bookHandler.GetAll)
			r.Get("/search", bookHandler.Search)
			r.Get("/{id}", bookHandler.Get)

			// Protected book routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", bookHandler.Create)
				r.Patch("/{id}", bookHandler.Update)
				r.Post("/{id}/rate", bookHandler.Rate)
				r.Delete("/{id}", bookHandler.Delete)
			})
		})
	})

	return r
}
