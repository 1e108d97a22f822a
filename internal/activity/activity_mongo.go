package activity

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MirrorStore is the read-side copy of the feed.
//
//go:generate mockgen -source=activity_mongo.go -destination=mock/activity_mirror_mock.go -package=mock
type MirrorStore interface {
	Upsert(ctx context.Context, a Activity) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Activity, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(ctx context.Context, client *mongo.Client, database string) (MirrorStore, error) {
	coll := client.Database(database).Collection("activities")

	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
	}); err != nil {
		return nil, fmt.Errorf("create activity indexes: %w", err)
	}

	return &mongoStore{coll: coll}, nil
}

// Upsert is keyed by the activity id so redelivered events stay idempotent.
func (s *mongoStore) Upsert(ctx context.Context, a Activity) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a, options.Replace().SetUpsert(true))
	return err
}

func (s *mongoStore) ListByUser(ctx context.Context, userID string, limit int) ([]Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []Activity
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
