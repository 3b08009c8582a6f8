package rest

import (
	"context"
	"net/http"

	"car-market-service/internal/core/domain"
	core_port "car-market-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	allowedOrigins []string,
	searchHandler *SearchHandler,
	listingHandler *ListingHandler,
	authHandler *AuthHandler,
	favoritesHandler *FavoritesHandler,
	feedbackHandler *FeedbackHandler,
	authMiddleware *AuthMiddleware,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // 5 минут на кэш preflight-запроса
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные маршруты каталога
		r.Get("/search", searchHandler.SearchVehicles)
		r.Get("/listings", listingHandler.GetLatestListings)
		r.Get("/listings/{vehicleID}", listingHandler.GetListing)
		r.Get("/listings/{vehicleID}/similar", listingHandler.GetSimilarVehicles)

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Приватные маршруты (для всех авторизованных)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			r.Get("/favorites", favoritesHandler.List)
			r.Post("/favorites/{vehicleID}", favoritesHandler.Add)
			r.Delete("/favorites/{vehicleID}", favoritesHandler.Remove)

			r.Post("/feedback", feedbackHandler.RecordFeedback)

			// Модерация каталога - только для админов
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireRole(domain.RoleAdmin))
				r.Delete("/listings/{vehicleID}", listingHandler.DeleteListing)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
