package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"
	"github.com/bcart01v/beheardqueue-server/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// archiveReason tags why an appointment leaves the live set. Completed and
// cancelled map directly; any past-dated pre-terminal status is missed.
func archiveReason(status models.AppointmentStatus) models.ArchiveReason {
	switch status {
	case models.StatusCompleted:
		return models.ReasonCompleted
	case models.StatusCancelled:
		return models.ReasonCancelled
	default:
		return models.ReasonMissed
	}
}

// SweepArchive migrates terminal and past-dated appointments out of the live
// collection. Each appointment's history insert and live delete commit as one
// transaction, so an appointment exists in exactly one of the two collections
// at any observable time. A failure on one appointment never blocks the rest;
// failures are collected into the result.
func (s *DefaultSchedulingService) SweepArchive(ctx context.Context, now time.Time) (models.SweepResult, error) {
	logger := utils.GetLogger()
	var result models.SweepResult

	candidates, err := s.Appointments.ListSweepCandidates(ctx, now)
	if err != nil {
		return result, err
	}

	for _, appt := range candidates {
		reason := archiveReason(appt.Status)
		archived := appt
		if reason == models.ReasonMissed {
			archived.Status = models.StatusMissed
		}
		rec := &models.HistoricalAppointment{
			ID:          uuid.New().String(),
			OriginalID:  appt.ID,
			Appointment: archived,
			Reason:      reason,
			ArchivedAt:  now,
		}

		err := s.runTxn(ctx, func(txCtx context.Context) error {
			if err := s.Appointments.InsertHistory(txCtx, rec); err != nil {
				return err
			}
			return s.Appointments.Delete(txCtx, appt.ID)
		})
		if err != nil {
			logger.Error("failed to archive appointment",
				zap.String("appointmentID", appt.ID), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("appointment %s: %v", appt.ID, err))
			continue
		}
		result.ArchivedCount++
	}

	logger.Info("archival sweep finished",
		zap.Int("archived", result.ArchivedCount),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}
