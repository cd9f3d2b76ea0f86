package trailerRepo

import (
	"context"
	"fmt"

	"github.com/bcart01v/beheardqueue-server/database"
	"github.com/bcart01v/beheardqueue-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTrailerRepo is the production implementation backed by MongoDB.
type MongoTrailerRepo struct {
	coll *mongo.Collection
}

func NewMongoTrailerRepo() *MongoTrailerRepo {
	return &MongoTrailerRepo{coll: database.Collection("trailers")}
}

func (repo *MongoTrailerRepo) GetByID(ctx context.Context, trailerID string) (*models.Trailer, error) {
	var trailer models.Trailer
	err := repo.coll.FindOne(ctx, bson.M{"id": trailerID}).Decode(&trailer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trailer: %w", err)
	}
	return &trailer, nil
}
