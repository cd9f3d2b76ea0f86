package stallRepo

import (
	"context"
	"fmt"

	"github.com/bcart01v/beheardqueue-server/database"
	"github.com/bcart01v/beheardqueue-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStallRepo is the production implementation backed by MongoDB.
type MongoStallRepo struct {
	coll *mongo.Collection
}

func NewMongoStallRepo() *MongoStallRepo {
	return &MongoStallRepo{coll: database.Collection("stalls")}
}

func (repo *MongoStallRepo) GetByID(ctx context.Context, stallID string) (*models.Stall, error) {
	var stall models.Stall
	err := repo.coll.FindOne(ctx, bson.M{"id": stallID}).Decode(&stall)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stall: %w", err)
	}
	return &stall, nil
}

func (repo *MongoStallRepo) ListByTrailer(ctx context.Context, trailerID string) ([]models.Stall, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{"trailer_id": trailerID})
	if err != nil {
		return nil, fmt.Errorf("list stalls by trailer: %w", err)
	}
	var stalls []models.Stall
	if err := cursor.All(ctx, &stalls); err != nil {
		return nil, fmt.Errorf("decode stalls by trailer: %w", err)
	}
	return stalls, nil
}

func (repo *MongoStallRepo) UpdateStatus(ctx context.Context, stallID string, status models.StallStatus) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": stallID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update stall status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update stall status: no stall with id %s", stallID)
	}
	return nil
}
