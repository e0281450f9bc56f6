package rest

import (
	"context"
	"net/http"

	core_port "listing-service/internal/core/port"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	propertyHandler *PropertyHandler,
	agentHandler *AgentHandler,
	userHandler *UserHandler,
	auth *Authenticator,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Каталог объявлений. Создание работает и без токена,
		// но предъявленный токен привязывает агента и владельца.
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", propertyHandler.FindProperties)
			r.With(auth.Optional).Post("/", propertyHandler.CreateProperty)

			r.Route("/{propertyID}", func(r chi.Router) {
				r.Get("/", propertyHandler.GetPropertyDetails)
				r.Put("/", propertyHandler.UpdateProperty)
				r.Patch("/", propertyHandler.UpdateProperty)
				r.Delete("/", propertyHandler.DeleteProperty)

				r.Post("/promote", propertyHandler.PromoteProperty)
				r.Post("/track_view", propertyHandler.TrackView)
				r.Post("/inquire", propertyHandler.InquireProperty)
				r.Get("/similar", propertyHandler.FindSimilar)
			})
		})

		r.Get("/inquiries", propertyHandler.ListInquiries)

		r.Route("/agents", func(r chi.Router) {
			r.Get("/", agentHandler.ListAgents)
			r.Post("/", agentHandler.CreateAgent)
			r.Get("/{agentID}", agentHandler.GetAgent)
			r.Put("/{agentID}", agentHandler.UpdateAgent)
			r.Patch("/{agentID}", agentHandler.UpdateAgent)
			r.Delete("/{agentID}", agentHandler.DeleteAgent)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Register)
			r.Post("/login", userHandler.Login)

			// Фиксированные пути регистрируются раньше {userID}
			r.With(auth.Required).Post("/logout", userHandler.Logout)
			r.With(auth.Required).Get("/profile", userHandler.GetProfile)
			r.With(auth.Required).Get("/stats", userHandler.GetStats)
			r.With(auth.Required).Post("/upload_verification", userHandler.UploadVerification)

			r.Get("/{userID}", userHandler.GetUser)
			r.With(auth.Required).Put("/{userID}", userHandler.UpdateUser)
			r.With(auth.Required).Patch("/{userID}", userHandler.UpdateUser)
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
