package appointmentRepo

import (
	"github.com/bcart01v/beheardqueue-server/database"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	liveCollection     = "appointments"
	historyCollection  = "historical_appointments"
	scheduleCollection = "stall_schedules"
)

// MongoAppointmentRepo is the production implementation backed by MongoDB.
type MongoAppointmentRepo struct {
	liveColl     *mongo.Collection
	historyColl  *mongo.Collection
	scheduleColl *mongo.Collection
}

// NewMongoAppointmentRepo returns a repository bound to the configured database.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	return &MongoAppointmentRepo{
		liveColl:     database.Collection(liveCollection),
		historyColl:  database.Collection(historyCollection),
		scheduleColl: database.Collection(scheduleCollection),
	}
}
