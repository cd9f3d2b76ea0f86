package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BumpScheduleVersion increments the shared version document for one
// (stall, date) contention domain. Mongo transactions are snapshot-isolated
// and detect conflicts only on documents both transactions write, so two
// concurrent bookings that would otherwise insert disjoint documents are
// forced to collide here; the loser aborts with a transient label and the
// engine retries against the committed state.
func (repo *MongoAppointmentRepo) BumpScheduleVersion(ctx context.Context, stallID, date string) error {
	filter := bson.M{"stall_id": stallID, "date": date}
	update := bson.M{"$inc": bson.M{"version": 1}}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.scheduleColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return wrapStoreErr("bump schedule version", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	if _, err := repo.liveColl.InsertOne(ctx, appt); err != nil {
		return wrapStoreErr("insert appointment", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := repo.liveColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("get appointment", err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	res, err := repo.liveColl.ReplaceOne(ctx, bson.M{"id": appt.ID}, appt)
	if err != nil {
		return wrapStoreErr("update appointment", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update appointment: no document with id %s", appt.ID)
	}
	return nil
}

func (repo *MongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := repo.liveColl.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return wrapStoreErr("delete appointment", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) UpdateStatusMany(ctx context.Context, ids []string, status models.AppointmentStatus, updatedAt time.Time) error {
	filter := bson.M{"id": bson.M{"$in": ids}}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": updatedAt}}
	res, err := repo.liveColl.UpdateMany(ctx, filter, update)
	if err != nil {
		return wrapStoreErr("update appointment statuses", err)
	}
	if res.MatchedCount != int64(len(ids)) {
		return fmt.Errorf("update appointment statuses: matched %d of %d", res.MatchedCount, len(ids))
	}
	return nil
}

func (repo *MongoAppointmentRepo) InsertHistory(ctx context.Context, rec *models.HistoricalAppointment) error {
	if _, err := repo.historyColl.InsertOne(ctx, rec); err != nil {
		return wrapStoreErr("insert historical appointment", err)
	}
	return nil
}
