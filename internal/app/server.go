package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/neoconsult/booking-assistant/internal/api/handlers"
	appMiddleware "github.com/neoconsult/booking-assistant/internal/api/middlewares"
	"github.com/neoconsult/booking-assistant/internal/config"
	"github.com/neoconsult/booking-assistant/internal/core/assistant"
	db "github.com/neoconsult/booking-assistant/internal/core/database"
	"github.com/neoconsult/booking-assistant/internal/core/ingestion"
	"github.com/neoconsult/booking-assistant/internal/core/objectstore"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(
	cfg *config.Config,
	dbClient db.DbClient,
	asst *assistant.Assistant,
	session *assistant.Session,
	ingestor *ingestion.Ingestor,
	archive objectstore.ObjectClient,
) *Server {
	authHandler := handlers.NewAuthHandler(dbClient, cfg.JWTSecret)
	docHandler := handlers.NewDocumentHandler(ingestor, session, archive)
	chatHandler := handlers.NewChatHandler(asst, session)
	adminHandler := handlers.NewAdminHandler(dbClient)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		// public assistant surface
		api.Post("/chat", chatHandler.Chat)
		api.Post("/documents/upload", docHandler.Upload)

		// admin dashboard
		api.Post("/admin/signup", authHandler.Signup)
		api.Post("/admin/login", authHandler.Login)
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWTMiddleware(cfg.JWTSecret))
			protected.Get("/admin/bookings", adminHandler.ListBookings)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
