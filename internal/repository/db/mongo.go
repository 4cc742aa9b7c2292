package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared with the mongo repositories.
const (
	UsersCollection = "users"
	ItemsCollection = "items"
	CartsCollection = "carts"
)

const mongoConnectTimeout = 10 * time.Second

// ConnectMongo dials the server, verifies it with a ping and ensures indexes.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

// EnsureMongoIndexes creates the unique indexes the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{UsersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{CartsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{ItemsCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}},
		}},
	}
	for _, ix := range indexes {
		if _, err := db.Collection(ix.collection).Indexes().CreateOne(ctx, ix.model); err != nil {
			return fmt.Errorf("create index on %s: %w", ix.collection, err)
		}
	}
	return nil
}
