package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/dmartinez/todo-api/docs"
	"github.com/dmartinez/todo-api/internal/api"
	"github.com/dmartinez/todo-api/internal/auth"
	"github.com/dmartinez/todo-api/internal/config"
	"github.com/dmartinez/todo-api/internal/todo"
)

type Server struct {
	config     *config.AppConfig
	log        *zap.Logger
	httpServer *http.Server
}

type Params struct {
	fx.In

	Config         *config.AppConfig
	Logger         *zap.Logger
	AuthHandler    *auth.Handler
	AuthMiddleware *auth.AuthMiddleware
	TodoHandler    *todo.Handler
}

func NewServer(p Params) *Server {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(p.Logger))
	r.Use(recoverer(p.Logger))
	r.Use(cors.Handler(corsOptions(p.Config.Server.CORS)))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get(api.Health, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get(api.SwaggerDocs, httpSwagger.Handler())

	// Public account endpoints
	r.Post(api.AccountRegister, p.AuthHandler.Register)
	r.Post(api.AccountLogin, p.AuthHandler.Login)

	// Authenticated item endpoints
	r.Route(api.ToDoItems, func(r chi.Router) {
		r.Use(p.AuthMiddleware.Authenticate)
		p.TodoHandler.RegisterRoutes(r)
	})

	addr := fmt.Sprintf("%s:%s", p.Config.Server.Host, p.Config.Server.Port)

	return &Server{
		config: p.Config,
		log:    p.Logger,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  p.Config.Server.ReadTimeout,
			WriteTimeout: p.Config.Server.WriteTimeout,
		},
	}
}

func corsOptions(cfg config.CORSConfig) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if len(opts.AllowedMethods) == 0 {
		opts.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(opts.AllowedHeaders) == 0 {
		opts.AllowedHeaders = []string{"Authorization", "Content-Type"}
	}
	return opts
}

func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		zap.String("address", s.httpServer.Addr),
		zap.Object("config", serverConfigToField(s.config)),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

func (s *Server) Stop() {
	s.log.Info("shutting down HTTP server")

	timeout := s.config.Server.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error("failed to shut down server gracefully", zap.Error(err))
	}
}

func serverConfigToField(config *config.AppConfig) zapcore.ObjectMarshaler {
	return zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("environment", os.Getenv("APP_ENV"))
		enc.AddString("host", config.Server.Host)
		enc.AddString("port", config.Server.Port)
		return nil
	})
}
