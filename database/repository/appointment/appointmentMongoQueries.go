package appointmentRepo

import (
	"context"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoAppointmentRepo) ListByStallAndDate(ctx context.Context, stallID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"stall_id": stallID,
		"date":     date,
		"status":   bson.M{"$ne": models.StatusCancelled},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.liveColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapStoreErr("list appointments by stall and date", err)
	}
	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, wrapStoreErr("decode appointments by stall and date", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) ListScheduledBySubjectAndDate(ctx context.Context, subjectID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"subject_id": subjectID,
		"date":       date,
		"status":     models.StatusScheduled,
	}
	cursor, err := repo.liveColl.Find(ctx, filter)
	if err != nil {
		return nil, wrapStoreErr("list scheduled appointments by subject", err)
	}
	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, wrapStoreErr("decode scheduled appointments by subject", err)
	}
	return appts, nil
}

// ListSweepCandidates selects terminal appointments plus pre-terminal ones
// that have fully elapsed. Elapsed-ness compares against end_date, the
// calendar date the appointment actually ends on, so an overnight booking
// whose end wraps past midnight is not mistaken for one that already ran.
// Date and HH:MM strings compare lexicographically, so the whole test stays
// inside the query.
func (repo *MongoAppointmentRepo) ListSweepCandidates(ctx context.Context, now time.Time) ([]models.Appointment, error) {
	today := now.Format("2006-01-02")
	nowHHMM := now.Format("15:04")

	filter := bson.M{
		"$or": bson.A{
			bson.M{"status": bson.M{"$in": bson.A{models.StatusCompleted, models.StatusCancelled}}},
			bson.M{
				"status": bson.M{"$in": bson.A{models.StatusScheduled, models.StatusCheckedIn, models.StatusInProgress}},
				"$or": bson.A{
					bson.M{"end_date": bson.M{"$lt": today}},
					bson.M{"end_date": today, "end_time": bson.M{"$lt": nowHHMM}},
				},
			},
		},
	}
	cursor, err := repo.liveColl.Find(ctx, filter)
	if err != nil {
		return nil, wrapStoreErr("list sweep candidates", err)
	}
	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, wrapStoreErr("decode sweep candidates", err)
	}
	return appts, nil
}
