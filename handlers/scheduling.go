package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bcart01v/beheardqueue-server/config"
	"github.com/bcart01v/beheardqueue-server/models"
	"github.com/bcart01v/beheardqueue-server/services/scheduling"
	"github.com/bcart01v/beheardqueue-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SchedulingHandler exposes the scheduling engine over HTTP.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
	Cache   *redis.Client
	Logger  *zap.Logger
}

func NewSchedulingHandler(svc scheduling.SchedulingService, cache *redis.Client, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Service: svc, Cache: cache, Logger: logger}
}

func slotCacheKey(stallID, date string) string {
	return fmt.Sprintf("slots:%s:%s", stallID, date)
}

func (h *SchedulingHandler) invalidateSlots(c *gin.Context, stallID, date string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Del(c.Request.Context(), slotCacheKey(stallID, date)).Err(); err != nil {
		h.Logger.Warn("failed to invalidate slot cache",
			zap.String("stallID", stallID), zap.String("date", date), zap.Error(err))
	}
}

// GetAvailableSlotsHandler returns the bookable slots for a stall on a date.
// Responses are cached briefly; any booking or reassignment on the same
// (stall, date) invalidates the entry.
func (h *SchedulingHandler) GetAvailableSlotsHandler(c *gin.Context) {
	stallID := c.Query("stallId")
	date := c.Query("date")
	if stallID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "stallId and date query parameters are required")
		return
	}

	key := slotCacheKey(stallID, date)
	if h.Cache != nil {
		if cached, err := h.Cache.Get(c.Request.Context(), key).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), stallID, date, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	body, err := json.Marshal(gin.H{"slots": slots})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to encode slots", err.Error())
		return
	}
	if h.Cache != nil {
		ttl := time.Duration(config.AppConfig.SlotCacheTTL) * time.Second
		if err := h.Cache.Set(c.Request.Context(), key, body, ttl).Err(); err != nil {
			h.Logger.Warn("failed to cache slots", zap.String("key", key), zap.Error(err))
		}
	}
	c.Data(http.StatusOK, "application/json", body)
}

// BookAppointmentHandler creates an appointment from a selected slot.
func (h *SchedulingHandler) BookAppointmentHandler(c *gin.Context) {
	var input struct {
		SubjectID string `json:"subjectId" binding:"required"`
		StallID   string `json:"stallId" binding:"required"`
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), input.SubjectID, input.StallID, input.Date, input.StartTime)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidateSlots(c, appt.StallID, appt.Date)
	c.JSON(http.StatusCreated, appt)
}

// TransitionAppointmentHandler applies a lifecycle status change.
func (h *SchedulingHandler) TransitionAppointmentHandler(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	target, ok := models.ParseAppointmentStatus(input.Status)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", fmt.Sprintf("unknown status %q", input.Status))
		return
	}

	appt, err := h.Service.Transition(c.Request.Context(), id, target)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if target == models.StatusCancelled {
		// A cancellation frees the slot for other subjects.
		h.invalidateSlots(c, appt.StallID, appt.Date)
	}
	c.JSON(http.StatusOK, appt)
}

// ReassignAppointmentHandler moves an appointment to a new stall/start time.
func (h *SchedulingHandler) ReassignAppointmentHandler(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		StallID   string `json:"stallId" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	before, err := h.Service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	appt, err := h.Service.Reassign(c.Request.Context(), id, input.StallID, input.StartTime)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidateSlots(c, before.StallID, before.Date)
	h.invalidateSlots(c, appt.StallID, appt.Date)
	c.JSON(http.StatusOK, appt)
}

// GetAppointmentHandler fetches one live appointment.
func (h *SchedulingHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// SweepHandler triggers an archival sweep on demand.
func (h *SchedulingHandler) SweepHandler(c *gin.Context) {
	result, err := h.Service.SweepArchive(c.Request.Context(), time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HealthHandler returns the latest external-service health snapshot.
func (h *SchedulingHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}

// respondError maps engine errors onto HTTP statuses. Conflicts and invalid
// transitions are expected outcomes and carry their specific messages through.
func (h *SchedulingHandler) respondError(c *gin.Context, err error) {
	var notFound *scheduling.NotFoundError
	var invalidSlot *scheduling.InvalidSlotError
	var unavailable *scheduling.ResourceUnavailableError
	var invalid *scheduling.InvalidTransitionError
	var transient *scheduling.TransientStoreError

	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &invalidSlot):
		utils.JSONError(c, http.StatusBadRequest, "invalid slot", err.Error())
	case errors.As(err, &unavailable):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", err.Error())
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid transition", err.Error())
	case errors.As(err, &transient):
		utils.JSONError(c, http.StatusServiceUnavailable, "store contention", "The request could not be completed, please retry.")
	default:
		h.Logger.Error("scheduling request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "An unexpected error occurred. Please try again later.")
	}
}
