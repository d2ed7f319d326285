package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/shared-experiences-api/internal/api"
	"github.com/vietanh2810/shared-experiences-api/internal/api/middleware"
	"github.com/vietanh2810/shared-experiences-api/internal/audit"
	"github.com/vietanh2810/shared-experiences-api/internal/config"
	"github.com/vietanh2810/shared-experiences-api/internal/db"
	"github.com/vietanh2810/shared-experiences-api/internal/logger"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/mongostore"
	"github.com/vietanh2810/shared-experiences-api/internal/service"
)

const shutdownTimeout = 15 * time.Second

// Start runs the command line. With no sub-command it serves the API.
func Start() error {
	var configPath string

	root := &cobra.Command{
		Use:           "shared-experiences-api",
		Short:         "Shared experiences REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "./cmd/app/config.yml", "path to the config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return seed(cmd.Context(), configPath)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return root.ExecuteContext(ctx)
}

// storage holds the opened backend and how to release it.
type storage struct {
	repos api.Repositories
	close func()
}

func setup(configPath string) (*config.AppConfig, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	return conf, nil
}

// Swapped in tests.
var (
	openMongo      = db.OpenMongo
	ensureIndexes  = mongostore.EnsureIndexes
	openRelationDB = openRelational
)

// openStorage connects the configured backend. Whatever was opened before a
// failing step is closed again before the error is returned.
func openStorage(ctx context.Context, conf *config.AppConfig) (storage, error) {
	if conf.Database.Driver == config.DriverMongo {
		mdb, err := openMongo(ctx, conf.Database.Mongo)
		if err != nil {
			return storage{}, fmt.Errorf("failed to initialize mongo -> %w", err)
		}
		if err = ensureIndexes(ctx, mdb, conf.Audit.MongoCollection); err != nil {
			disconnectMongo(mdb)
			return storage{}, fmt.Errorf("failed to create mongo indexes -> %w", err)
		}

		return storage{
			repos: api.NewMongoRepositories(mdb, conf.Audit.MongoCollection),
			close: func() { disconnectMongo(mdb) },
		}, nil
	}

	gdb, err := openRelationDB(conf)
	if err != nil {
		return storage{}, fmt.Errorf("failed to initialize database -> %w", err)
	}
	if conf.Database.AutoMigrate {
		if err = dao.InitTables(gdb); err != nil {
			closeGorm(gdb)
			return storage{}, fmt.Errorf("failed to migrate tables -> %w", err)
		}
	}

	repos := api.NewGormRepositories(gdb)
	closeFn := func() { closeGorm(gdb) }

	// Audit records can live in mongo while the entities stay relational.
	if conf.Audit.Store == config.AuditStoreMongo && conf.Database.Mongo != nil {
		mdb, err := openMongo(ctx, conf.Database.Mongo)
		if err != nil {
			closeGorm(gdb)
			return storage{}, fmt.Errorf("failed to initialize mongo audit store -> %w", err)
		}
		repos.Audit = mongostore.NewAuditStore(mdb, conf.Audit.MongoCollection)
		closeFn = func() {
			closeGorm(gdb)
			disconnectMongo(mdb)
		}
	}

	return storage{repos: repos, close: closeFn}, nil
}

func closeGorm(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func disconnectMongo(mdb *mongo.Database) {
	if err := mdb.Client().Disconnect(context.Background()); err != nil {
		zap.L().Warn("mongo disconnect failed", zap.Error(err))
	}
}

func openRelational(conf *config.AppConfig) (*gorm.DB, error) {
	if conf.Database.Driver == config.DriverMySQL {
		return db.OpenMySQL(conf.Database.MySQL)
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}

	return db.OpenPostgres(conf.Database.Postgres)
}

func openAuditQueue(conf *config.AuditConfig, store service.AuditStore) (*audit.Queue, *audit.Publisher) {
	if !conf.Enabled {
		return nil, nil
	}

	sinks := []audit.Sink{store}
	var publisher *audit.Publisher
	if conf.AMQPURL != "" {
		publisher = audit.NewPublisher(conf.AMQPURL, conf.AMQPQueue)
		sinks = append(sinks, publisher)
	}

	q := audit.NewQueue(conf.QueueSize, sinks...)
	q.Start()

	return q, publisher
}

func serve(ctx context.Context, configPath string) error {
	conf, err := setup(configPath)
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, conf)
	if err != nil {
		return err
	}
	defer store.close()

	rdb := db.OpenRedis(conf.Redis)
	if rdb != nil {
		defer func(rdb *redis.Client) { _ = rdb.Close() }(rdb)
	}

	queue, publisher := openAuditQueue(conf.Audit, store.repos.Audit)
	// A nil *audit.Queue must not reach the middleware as a non-nil interface.
	var audits middleware.AuditQueue
	if queue != nil {
		audits = queue
	}

	s := api.NewServer(conf, store.repos, rdb, audits)
	srv := &http.Server{
		Addr:              ":" + conf.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		zap.L().Info("shutdown signal received")
	case err = <-errCh:
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}
	if queue != nil {
		if err = queue.Close(shutdownCtx); err != nil {
			zap.L().Warn("audit queue did not drain", zap.Error(err), zap.Int64("dropped", queue.Dropped()))
		}
	}
	if publisher != nil {
		_ = publisher.Close()
	}
	zap.L().Info("server stopped")

	return nil
}

func seed(ctx context.Context, configPath string) error {
	conf, err := setup(configPath)
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, conf)
	if err != nil {
		return err
	}
	defer store.close()

	seeded, err := service.NewSeedService(store.repos.Seeder, conf.Auth.BcryptCost).Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed -> %w", err)
	}
	if !seeded {
		zap.L().Info("database already has users, nothing seeded")
		return nil
	}

	zap.L().Info("demo dataset loaded")

	return nil
}
