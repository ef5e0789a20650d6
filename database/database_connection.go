package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	UsersCollection = "users"
	TasksCollection = "tasks"
)

// Connect opens a client and pings the primary so startup fails fast on a bad URI.
func Connect(ctx context.Context, uri string, log *slog.Logger) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Info("connected to MongoDB")
	return client, nil
}

func Ping(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}

func Disconnect(ctx context.Context, client *mongo.Client, log *slog.Logger) {
	if err := client.Disconnect(ctx); err != nil {
		log.Error("mongo disconnect failed", "err", err)
		return
	}
	log.Info("disconnected from MongoDB")
}
