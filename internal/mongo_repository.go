package internal

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RunsCollection = "runs"

type MongoRunRepository struct {
	collection *mongo.Collection
}

func NewMongoRunRepository(db *mongo.Database) *MongoRunRepository {
	return &MongoRunRepository{
		collection: db.Collection(RunsCollection),
	}
}

func (r *MongoRunRepository) Add(ctx context.Context, run Run) error {
	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		slog.Error("failed to insert run in mongodb", "err", err, "id", run.ID)
		return err
	}
	return nil
}

func (r *MongoRunRepository) Find(ctx context.Context, from, to time.Time) ([]Run, error) {
	filter := bson.M{}
	if !from.IsZero() && !to.IsZero() {
		filter["createdAt"] = bson.M{"$gte": from, "$lte": to}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		slog.Error("failed to query runs from mongodb", "err", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	runs := []Run{}
	if err := cursor.All(ctx, &runs); err != nil {
		slog.Error("failed to decode runs from mongodb", "err", err)
		return nil, err
	}

	return runs, nil
}
