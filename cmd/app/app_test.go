package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vietanh2810/shared-experiences-api/internal/config"
)

// stubOpeners replaces the storage openers for one test. Neither handle
// dials until it is used, so no server is needed.
func stubOpeners(t *testing.T) (*gorm.DB, *mongo.Database) {
	t.Helper()

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=nobody dbname=nothing sslmode=disable",
	}), &gorm.Config{DisableAutomaticPing: true, Logger: gormlogger.Discard})
	require.NoError(t, err)

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	mdb := client.Database("nothing")

	prevMongo, prevIndexes, prevRelational := openMongo, ensureIndexes, openRelationDB
	t.Cleanup(func() {
		openMongo, ensureIndexes, openRelationDB = prevMongo, prevIndexes, prevRelational
		_ = client.Disconnect(context.Background())
	})

	openMongo = func(context.Context, *config.MongoConfig) (*mongo.Database, error) { return mdb, nil }
	ensureIndexes = func(context.Context, *mongo.Database, string) error { return nil }
	openRelationDB = func(*config.AppConfig) (*gorm.DB, error) { return gdb, nil }

	return gdb, mdb
}

func storageConfig(driver, auditStore string) *config.AppConfig {
	return &config.AppConfig{
		Database: &config.DatabaseConfig{
			Driver: driver,
			Mongo:  &config.MongoConfig{URI: "mongodb://127.0.0.1:1", Database: "nothing"},
		},
		Audit: &config.AuditConfig{Store: auditStore, MongoCollection: "audit_logs"},
	}
}

func assertGormClosed(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.EqualError(t, sqlDB.Ping(), "sql: database is closed")
}

func assertMongoDisconnected(t *testing.T, mdb *mongo.Database) {
	t.Helper()
	assert.ErrorIs(t, mdb.Client().Disconnect(context.Background()), mongo.ErrClientDisconnected)
}

func TestOpenStorage_IndexFailureDisconnectsMongo(t *testing.T) {
	_, mdb := stubOpeners(t)
	ensureIndexes = func(context.Context, *mongo.Database, string) error { return errors.New("not primary") }

	_, err := openStorage(context.Background(), storageConfig(config.DriverMongo, config.AuditStoreDatabase))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create mongo indexes")

	assertMongoDisconnected(t, mdb)
}

func TestOpenStorage_AuditStoreFailureClosesDatabase(t *testing.T) {
	gdb, _ := stubOpeners(t)
	openMongo = func(context.Context, *config.MongoConfig) (*mongo.Database, error) {
		return nil, errors.New("connection refused")
	}

	_, err := openStorage(context.Background(), storageConfig(config.DriverPostgres, config.AuditStoreMongo))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize mongo audit store")

	assertGormClosed(t, gdb)
}

func TestOpenStorage_CloseReleasesBothHandles(t *testing.T) {
	gdb, mdb := stubOpeners(t)

	store, err := openStorage(context.Background(), storageConfig(config.DriverPostgres, config.AuditStoreMongo))
	require.NoError(t, err)
	require.NotNil(t, store.repos.Audit)

	store.close()

	assertGormClosed(t, gdb)
	assertMongoDisconnected(t, mdb)
}
