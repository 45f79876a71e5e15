package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/loyalty-tools/receipt-points/pkg/handlers/receipt"
	rpmiddleware "github.com/loyalty-tools/receipt-points/pkg/server/middleware"
	"github.com/loyalty-tools/receipt-points/pkg/store/records"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Validator handlers.Validator
	Records   records.Store
	Logger    zerolog.Logger
}

type RateLimit struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	RateLimit       RateLimit
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	receiptHandler := handlers.NewHandler(config.Dependencies.Validator, config.Dependencies.Records)

	router := chi.NewRouter()

	logger := config.Dependencies.Logger
	router.Use(rpmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)
	router.Use(rpmiddleware.SecurityHeaders)

	if config.RateLimit.Enabled {
		limiter := rpmiddleware.NewRateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst)
		router.Use(limiter.Handler)
	}

	router.Post("/receipts/process", receiptHandler.ProcessReceipt)
	router.Get("/receipts/{id}/points", receiptHandler.GetPoints)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"resource not found"}`))
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		server:          &http.Server{Addr: config.Addr, Handler: router},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
