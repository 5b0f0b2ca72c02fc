// Package control serves the HTTP API: engine state snapshots, command
// invocation and a live event stream. Every engine mutation goes through
// Session.Dispatch so the single-threaded model holds.
package control

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/slabwm/slab/internal/build"
	"github.com/slabwm/slab/internal/config"
	"github.com/slabwm/slab/internal/wm"
	"github.com/slabwm/slab/pkg/chiext"
)

type Server struct {
	addr    string
	handler http.Handler
}

func NewServer(addr string, session *wm.Session, store *config.Store) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	api := humachi.New(r, huma.DefaultConfig("slab control API", build.Current.Version))
	register(api, session, store)

	return &Server{addr: addr, handler: r}
}

func (s *Server) String() string { return "control.Server" }

func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.handler}

	errC := make(chan error, 1)
	go func() { errC <- srv.ListenAndServe() }()
	slog.Info("Control API listening", "address", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		<-errC
		return ctx.Err()
	case err := <-errC:
		return err
	}
}
