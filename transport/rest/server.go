package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/bot"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

type botService interface {
	SelectMove(snapshot tictactoe.Snapshot, strength bot.Strength) (tictactoe.Move, error)
}

type archiveService interface {
	List(ctx context.Context, limit int) ([]*entity.ArchivedMatch, error)
}

type Server struct {
	logger  *slog.Logger
	bot     botService
	archive archiveService

	defaultStrength bot.Strength
}

func New(logger *slog.Logger, searcher botService, archive archiveService, defaultStrength bot.Strength) *Server {
	return &Server{
		logger:          logger.With("component", "rest"),
		bot:             searcher,
		archive:         archive,
		defaultStrength: defaultStrength,
	}
}

// Router - the HTTP routes of the service.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.handlePing)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/bot/move", that.handleBotMove)
		r.Get("/archive", that.handleArchive)
	})

	return router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
