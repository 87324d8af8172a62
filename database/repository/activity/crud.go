package activityRepo

import (
	"context"
	"time"

	"sessionsheet/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Create inserts a new log entry and returns its ID.
func (r *mongoActivityRepo) Create(ctx context.Context, entry models.ActivityLog) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// GetByID returns a log entry by its ID.
func (r *mongoActivityRepo) GetByID(ctx context.Context, id string) (*models.ActivityLog, error) {
	var entry models.ActivityLog
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *mongoActivityRepo) List(ctx context.Context, actor string, limit int) ([]models.ActivityLog, error) {
	filter := bson.M{}
	if actor != "" {
		filter["actor"] = actor
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(ClampLimit(limit)))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.ActivityLog{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ClampLimit maps a requested page size into 1..MaxListLimit.
func ClampLimit(limit int) int {
	switch {
	case limit < 1:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
