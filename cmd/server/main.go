package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"workbench/internal/audithistory"
	audithistoryhandler "workbench/internal/audithistory/handler"
	calendarhandler "workbench/internal/calendar/handler"
	"workbench/internal/dashboard"
	dashboardhandler "workbench/internal/dashboard/handler"
	"workbench/internal/event"
	eventhandler "workbench/internal/event/handler"
	"workbench/internal/platform/config"
	"workbench/internal/platform/httpserver"
	"workbench/internal/platform/localstore"
	"workbench/internal/platform/logger"
	"workbench/internal/platform/metrics"
	platformredis "workbench/internal/platform/redis"
	"workbench/internal/registry"
	registryhandler "workbench/internal/registry/handler"
	"workbench/internal/session"
	sessionhandler "workbench/internal/session/handler"
	httptransport "workbench/internal/transport/http"
	audit "workbench/pkg/platform/audit"
	kafkasink "workbench/pkg/platform/audit/sinks/kafka"
	auditmemory "workbench/pkg/platform/audit/store/memory"
	auditpostgres "workbench/pkg/platform/audit/store/postgres"
	auditworker "workbench/pkg/platform/audit/worker"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	local, err := localstore.New(cfg.DataDir)
	if err != nil {
		return err
	}

	trail := audit.NewPublisher(256, log)
	var trailStore audit.Store
	if cfg.Postgres.DSN != "" {
		pgTrail, err := auditpostgres.Open(cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer pgTrail.Close()
		trailStore = pgTrail
	} else {
		trailStore = auditmemory.NewInMemoryStore()
	}

	var sinks []audit.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := kafkasink.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer sink.Close()
		sinks = append(sinks, sink)
	}
	worker := auditworker.New(trailStore, trail.Inbox(), log, sinks...)

	var eventStore event.Store
	if cfg.Postgres.DSN != "" {
		pgEvents, err := event.OpenPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer pgEvents.Close()
		eventStore = pgEvents
	} else {
		eventStore = event.NewInMemoryStore()
	}

	var sessionStore session.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessionStore = session.NewRedisSessionStore(redisClient.Client)
	} else {
		sessionStore = session.NewInMemorySessionStore()
	}

	users := registry.NewUsers(registry.SeedUsers())
	entities := registry.NewEntities(registry.SeedEntities())

	tokens := session.NewTokenService(cfg.JWTSigningKey, cfg.SessionTTL)
	sessions := session.NewService(users, sessionStore, tokens, local, trail, m, log, cfg.SessionTTL)

	events := event.NewService(eventStore, local, trail, m, log)
	if err := events.Restore(ctx); err != nil {
		return err
	}

	board := dashboard.NewService(dashboard.NewInMemoryStore(), local, trail, m, log)
	if err := board.Restore(ctx); err != nil {
		return err
	}

	history := audithistory.NewService(audithistory.NewInMemoryStore(), local, trail, log)
	if err := history.Restore(ctx); err != nil {
		return err
	}

	router := httptransport.NewRouter(prometheus.DefaultGatherer,
		sessionhandler.New(sessions, log, m, tokens),
		registryhandler.New(entities, users, log, m, tokens),
		eventhandler.New(events, sessions, log, m, tokens),
		calendarhandler.New(events, sessions, log, m, tokens),
		dashboardhandler.New(board, sessions, log, m, tokens),
		audithistoryhandler.New(history, sessions, log, m, tokens),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("workbench listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
