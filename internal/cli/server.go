package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"driving-quiz-service/internal/app"
	"driving-quiz-service/internal/auth"
	"driving-quiz-service/internal/bank"
	"driving-quiz-service/internal/config"
	"driving-quiz-service/internal/infra/memory"
	pgstore "driving-quiz-service/internal/infra/postgres"
	redisstore "driving-quiz-service/internal/infra/redis"
	"driving-quiz-service/internal/quiz"
	"driving-quiz-service/internal/telemetry"
	transport "driving-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the practice quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, logger); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.BankLoader = bank.NewStaticLoader(bank.Default())
	switch {
	case cfg.Quiz.BankFile != "":
		loader = bank.NewFileLoader(cfg.Quiz.BankFile)
	case pool != nil:
		loader = pgstore.NewQuestionLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var bankRepo app.BankRepository
	if redisClient != nil {
		bankRepo = redisstore.NewBankRepository(redisClient, loader, bankTTL)
	} else {
		bankRepo = memory.NewBankRepository(loader, bankTTL)
	}

	var store app.SessionRepository
	var kv auth.Storage
	if redisClient != nil {
		store = redisstore.NewSessionStore(redisClient, redisTTL)
		kv = redisstore.NewKVStore(redisClient)
	} else {
		store = memory.NewSessionStore()
		kv = memory.NewKVStore()
	}

	var history app.HistoryStore
	if pool != nil {
		history = pgstore.NewHistoryStore(pool)
	} else {
		history = memory.NewHistoryStore()
	}

	service := app.NewPracticeService(app.Config{
		Sessions:      store,
		Bank:          bankRepo,
		History:       history,
		Metrics:       telemetry.NewMetrics(prometheus.DefaultRegisterer),
		Logger:        logger.Named("practice"),
		QuestionCount: cfg.Quiz.QuestionsPerSession,
		Rand:          quiz.NewRand(),
	})
	authenticator := auth.NewMockAuthenticator(kv, config.TTLDuration(cfg.Auth.TokenTTL, 24*time.Hour), logger.Named("auth"))

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/ws", transport.NewWSHandler(service, logger.Named("ws")).ServeWS)
	transport.NewAPI(service, authenticator, logger.Named("api")).Register(mux)

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting quiz service",
			zap.String("addr", server.Addr),
			zap.Bool("redis", redisClient != nil),
			zap.Bool("postgres", pool != nil))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newRedisClient returns nil when no Redis address is configured.
func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
