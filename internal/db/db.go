package db

import (
	"context"
	"fmt"
	"time"

	"github.com/tylervsnyc/chess-learning-tree/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 5 * time.Second

type LessonDbClient struct {
	client           *mongo.Client
	LessonCollection *mongo.Collection
}

func (r *LessonDbClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func NewDbClient(cfg *config.Configuration) (*LessonDbClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.Database.Address)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Database.Address, err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", cfg.Database.Address, err)
	}

	dbClient := &LessonDbClient{
		client:           client,
		LessonCollection: client.Database(cfg.Database.DatabaseName).Collection(cfg.Database.Collection),
	}

	_, err = dbClient.LessonCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "lessonId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "puzzles.rating", Value: 1}},
		},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create indexes on %s.%s: %w", cfg.Database.DatabaseName, cfg.Database.Collection, err)
	}
	return dbClient, nil
}
