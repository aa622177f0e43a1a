// Copyright (c) 2026 Knihovna. All rights reserved.

// Package mongo provides a managed MongoDB client for the catalog store.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It owns the physical
// connection lifecycle (explicit connect at startup, explicit disconnect at
// shutdown — no import-time side effects) and the startup index creation for
// the catalog collections.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/knihovna/api/internal/platform/constants"
)

// Opinionated client settings for the catalog workload.
const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 2 * time.Second
	maxPoolSize    = 25
)

// NewClient connects to MongoDB and returns the client plus the application
// database handle.
//
// # Parameters
//   - ctx: Context for the initial connect and ping.
//   - mongoURL: MongoDB connection URL.
//   - database: Name of the application database.
//   - logger: Structured logger for connection events.
func NewClient(ctx context.Context, mongoURL, database string, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: connect failed: %w", err)
	}

	// Validate connectivity immediately at startup.
	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	logger.Info("mongo client connected",
		slog.String("database", database),
		slog.Int("max_pool_size", maxPoolSize),
	)

	return client, client.Database(database), nil
}

// Ping verifies that the MongoDB client is healthy.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}

	return nil
}

// EnsureIndexes creates the indexes the query layer depends on.
//
// Idempotent: MongoDB treats creation of an existing index as a no-op, so
// this is safe to run on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	// Every list query filters on deletedAt and the freshness check sorts on
	// updatedAt, so each catalog collection gets both.
	catalog := []string{
		constants.CollectionBooks,
		constants.CollectionAuthors,
		constants.CollectionLPs,
		constants.CollectionBoardGames,
		constants.CollectionQuotes,
	}

	for _, name := range catalog {
		_, err := db.Collection(name).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "deletedAt", Value: 1}}},
			{Keys: bson.D{{Key: "updatedAt", Value: -1}}},
		})
		if err != nil {
			return fmt.Errorf("mongo: index creation failed for %s: %w", name, err)
		}
	}

	// Logins look users up by username.
	_, err := db.Collection(constants.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo: index creation failed for users: %w", err)
	}

	logger.Info("mongo indexes ensured", slog.Int("collections", len(catalog)+1))
	return nil
}
