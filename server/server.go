// Package server assembles the HTTP server around the teaching service.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sahayak-ai/sahayak/internal/profile"
	"github.com/sahayak-ai/sahayak/server/middleware"
	apiv1 "github.com/sahayak-ai/sahayak/server/router/api/v1"
	"github.com/sahayak-ai/sahayak/server/service/teacher"
	"github.com/sahayak-ai/sahayak/store"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	cleanupJob *store.CleanupJob
}

// NewServer wires the API routes and background jobs. It does not listen
// until Start is called.
func NewServer(profile *profile.Profile, teacherService *teacher.Service, sessions *store.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(
		echomw.Recover(),
		echomw.CORS(),
		middleware.RequestContext(slog.Default()),
	)

	apiv1.NewAPIV1Service(profile, teacherService, sessions).Register(e)

	return &Server{
		Profile:    profile,
		Store:      sessions,
		echoServer: e,
		cleanupJob: store.NewCleanupJob(sessions, store.DefaultCleanupInterval),
	}
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.cleanupJob.Start(ctx)
	defer s.cleanupJob.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "addr", s.Profile.ListenAddr(), "mode", s.Profile.Mode)
		if err := s.echoServer.Start(s.Profile.ListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("shutting down")
		return s.echoServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
