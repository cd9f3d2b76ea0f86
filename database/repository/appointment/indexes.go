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

// EnsureIndexes creates the indexes backing the engine's query patterns.
func (repo *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	liveModels := []mongo.IndexModel{
		// Unique index on appointment ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for the (stall, date) contention domain
		{
			Keys:    bson.D{{Key: "stall_id", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("stall_date_status_idx"),
		},
		// Compound index for the subject batch check-in query
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("subject_date_idx"),
		},
		// Compound index for the sweep's elapsed test
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "end_date", Value: 1}},
			Options: options.Index().SetName("status_end_date_idx"),
		},
		// Unique backstop against identical-slot races. Overlapping but
		// unequal starts are handled by the schedule version document.
		{
			Keys: bson.D{{Key: "stall_id", Value: 1}, {Key: "date", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_live_slot_idx").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": bson.A{
					models.StatusScheduled, models.StatusCheckedIn, models.StatusInProgress, models.StatusCompleted,
				}}}),
		},
	}
	if _, err := repo.liveColl.Indexes().CreateMany(ctx, liveModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	scheduleModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "stall_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("stall_date_unique"),
		},
	}
	if _, err := repo.scheduleColl.Indexes().CreateMany(ctx, scheduleModels); err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}

	historyModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "original_id", Value: 1}},
			Options: options.Index().SetName("original_id_idx"),
		},
		{
			Keys:    bson.D{{Key: "archived_at", Value: 1}},
			Options: options.Index().SetName("archived_at_idx"),
		},
	}
	if _, err := repo.historyColl.Indexes().CreateMany(ctx, historyModels); err != nil {
		return fmt.Errorf("failed to create history indexes: %w", err)
	}
	return nil
}
