package activityRepo

import (
	"context"

	"sessionsheet/config"
	"sessionsheet/database"
	"sessionsheet/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, entry models.ActivityLog) (string, error)
	GetByID(ctx context.Context, id string) (*models.ActivityLog, error)
	// List returns the newest entries first, optionally filtered by actor.
	List(ctx context.Context, actor string, limit int) ([]models.ActivityLog, error)
}

type mongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo returns an ActivityLogRepository backed by MongoDB.
func NewMongoActivityRepo() ActivityLogRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoActivityRepo{
		coll: db.Collection("activity_logs"),
	}
}
