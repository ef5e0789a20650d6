package utils

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SeedUser makes sure a development account exists. It is a no-op when either
// credential is empty and never overwrites an existing user.
func SeedUser(ctx context.Context, usersCol *mongo.Collection, username, password string, cost int, log *slog.Logger) error {
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return nil
	}

	hash, err := HashPassword(password, cost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	now := time.Now().UTC()

	filter := bson.M{"username": username}
	update := bson.M{
		"$setOnInsert": bson.M{
			"username":     username,
			"passwordHash": hash,
			"createdAt":    now,
			"updatedAt":    now,
		},
	}

	opts := options.UpdateOne().SetUpsert(true)

	res, err := usersCol.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("seed user upsert failed: %w", err)
	}

	if res.UpsertedCount == 1 {
		log.Info("seed user created", "username", username)
	} else {
		log.Info("seed user already exists", "username", username)
	}

	return nil
}
