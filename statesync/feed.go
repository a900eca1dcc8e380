package statesync

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/padelclub/padel-league/repositories"
)

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = 30 * time.Second
	pingInterval         = 90 * time.Second
)

// Feed subscribes to the Postgres notification channel and reconciles
// every announced revision into the mirror. Notifications only carry the
// revision number; the aggregate itself is re-read from the store, so a
// lost notification is healed by the next one or by a reconnect.
type Feed struct {
	listener *pq.Listener
	repo     repositories.MastersRepository
	mirror   *Mirror
	logger   *slog.Logger
}

func NewFeed(dsn string, repo repositories.MastersRepository, mirror *Mirror, logger *slog.Logger) *Feed {
	listener := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				logger.Error("masters feed listener event", slog.Int("event", int(event)), slog.Any("error", err))
			}
		})
	return &Feed{
		listener: listener,
		repo:     repo,
		mirror:   mirror,
		logger:   logger,
	}
}

// Run listens until the context is cancelled. It performs an initial load
// so the mirror is warm before the first notification arrives.
func (f *Feed) Run(ctx context.Context) error {
	if err := f.listener.Listen(repositories.MastersChannel); err != nil {
		return err
	}
	defer f.listener.Close()

	f.refresh(ctx)

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n := <-f.listener.Notify:
			if n == nil {
				// Connection re-established; anything may have been missed.
				f.refresh(ctx)
				continue
			}
			revision, err := strconv.ParseInt(n.Extra, 10, 64)
			if err != nil {
				f.logger.Warn("masters feed: bad revision payload", slog.String("payload", n.Extra))
				f.refresh(ctx)
				continue
			}
			if revision > f.mirror.Revision() {
				f.refresh(ctx)
			}

		case <-ping.C:
			if err := f.listener.Ping(); err != nil {
				f.logger.Error("masters feed ping failed", slog.Any("error", err))
			}
		}
	}
}

func (f *Feed) refresh(ctx context.Context) {
	state, revision, err := f.repo.Load(ctx)
	if err != nil {
		f.logger.Error("masters feed: reload failed", slog.Any("error", err))
		return
	}
	if f.mirror.Reconcile(state, revision) {
		f.logger.Info("masters state reconciled", slog.Int64("revision", revision))
	}
}
