package subjectRepo

import (
	"context"
	"fmt"

	"github.com/bcart01v/beheardqueue-server/database"
	"github.com/bcart01v/beheardqueue-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSubjectRepo is the production implementation backed by MongoDB.
type MongoSubjectRepo struct {
	coll *mongo.Collection
}

func NewMongoSubjectRepo() *MongoSubjectRepo {
	return &MongoSubjectRepo{coll: database.Collection("users")}
}

func (repo *MongoSubjectRepo) GetByID(ctx context.Context, subjectID string) (*models.Subject, error) {
	var subject models.Subject
	err := repo.coll.FindOne(ctx, bson.M{"id": subjectID}).Decode(&subject)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	return &subject, nil
}
