package routes

import (
	"time"

	"github.com/bcart01v/beheardqueue-server/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", h.HealthHandler)

	api := r.Group("/api/scheduling")
	{
		api.GET("/slots", h.GetAvailableSlotsHandler)
		api.POST("/appointments", h.BookAppointmentHandler)
		api.GET("/appointments/:id", h.GetAppointmentHandler)
		api.POST("/appointments/:id/transition", h.TransitionAppointmentHandler)
		api.POST("/appointments/:id/reassign", h.ReassignAppointmentHandler)
		api.POST("/sweep", h.SweepHandler)
	}
}
