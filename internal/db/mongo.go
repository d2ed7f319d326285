package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vietanh2810/shared-experiences-api/internal/config"
)

// OpenMongo connects and pings the primary. Multi-document transactions need
// the server to run as a replica set.
func OpenMongo(ctx context.Context, conf *config.MongoConfig) (*mongo.Database, error) {
	if conf == nil {
		return nil, fmt.Errorf("mongo settings are missing")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect -> %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	return client.Database(conf.Database), nil
}
