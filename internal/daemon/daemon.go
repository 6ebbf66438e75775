package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"notepad/internal/logging"
	"notepad/internal/store"
)

const shutdownTimeout = 5 * time.Second

type Daemon struct {
	addr    string
	token   string
	version string
	notes   store.NoteStore
	logger  logging.Logger
	metrics *Metrics
}

func New(addr, token, version string, notes store.NoteStore, logger logging.Logger) *Daemon {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Daemon{
		addr:    addr,
		token:   token,
		version: version,
		notes:   notes,
		logger:  logger,
		metrics: NewMetrics(),
	}
}

// Run serves the notes API until ctx is cancelled or a client requests
// shutdown. Live subscriptions are closed before the server drains.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	feed := NewNoteFeed(d.metrics)
	service := NewNoteService(d.notes, feed, d.metrics, d.logger.With(logging.F("component", "notes")))
	if _, err := service.Refresh(ctx); err != nil {
		return err
	}
	api := &API{
		Version: d.version,
		Notes:   service,
		Metrics: d.metrics,
		Logger:  d.logger,
		Shutdown: func(context.Context) error {
			stop()
			return nil
		},
	}

	server := &http.Server{
		Addr:              d.addr,
		Handler:           NewHandler(api, d.token),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	server.RegisterOnShutdown(feed.Close)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		d.logger.Info("daemon_listening",
			logging.F("addr", d.addr),
			logging.F("backend", d.notes.Backend()),
			logging.F("version", d.version),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		d.logger.Info("daemon_stopped")
		return nil
	})
	return group.Wait()
}
