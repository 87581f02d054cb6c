// File: routes/routes.go
package routes

import (
	"net/http"
	"time"

	aiLogRepo "maitred/database/repository/ailog"
	inventoryRepo "maitred/database/repository/inventory"
	tableRepo "maitred/database/repository/table"
	"maitred/handlers"
	"maitred/middleware"
	"maitred/services/agent"
	"maitred/services/booking"
	"maitred/services/cleanup"
	"maitred/services/linking"
	"maitred/services/mailer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ServiceBundle carries every service the HTTP surface needs.
type ServiceBundle struct {
	Agent     agent.AgentService
	Booking   booking.BookingService
	Cleanup   cleanup.CleanupService
	Linking   linking.LinkingService
	Mailer    mailer.MailerService
	Inventory inventoryRepo.InventoryRepository
	Tables    tableRepo.TableRepository
	ActionLog aiLogRepo.AIActionLogRepository
}

// RegisterAgentRoutes sets up the conversational reservation endpoints.
func RegisterAgentRoutes(r *gin.Engine, sb *ServiceBundle) {
	agentGroup := r.Group("/reservation-agent")
	{
		agentGroup.Use(middleware.OptionalAuthMiddleware())
		agentGroup.POST("", handlers.ReservationAgentHandler(sb.Agent))
		agentGroup.POST("/field-edit", handlers.DraftFieldEditHandler())
	}
}

// RegisterReservationRoutes sets up booking submission, lookup and the
// guest-linking flow.
func RegisterReservationRoutes(r *gin.Engine, sb *ServiceBundle) {
	api := r.Group("/api/reservations")
	{
		api.POST("", middleware.OptionalAuthMiddleware(), handlers.CreateReservationHandler(sb.Booking))
		api.GET("/token/:token", handlers.GetReservationByTokenHandler(sb.Booking))
		api.POST("/token/:token/cancel", handlers.CancelReservationHandler(sb.Booking))

		// Linking requires a verified identity.
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		protected.GET("/linkable", handlers.LinkableReservationsHandler(sb.Linking))
		protected.POST("/link", handlers.LinkReservationsHandler(sb.Linking))
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, sb *ServiceBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		adminGroup.GET("/reservations", handlers.AdminListReservationsHandler(sb.Booking, sb.Cleanup))
		adminGroup.PATCH("/reservations/:id/status", handlers.AdminUpdateStatusHandler(sb.Booking))
		adminGroup.GET("/reservations/stats", handlers.AdminReservationStatsHandler(sb.Booking))
		adminGroup.GET("/tables", handlers.AdminTablesHandler(sb.Tables))
		adminGroup.GET("/inventory/summary", handlers.AdminInventorySummaryHandler(sb.Inventory))
		adminGroup.GET("/ai-log", handlers.AdminAIActionLogHandler(sb.ActionLog))
	}

	// Retention sweep keeps its historical top-level path; GET previews,
	// POST deletes.
	sweepGroup := r.Group("/cleanup-past-reservations")
	{
		sweepGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		sweepGroup.GET("", handlers.CleanupPreviewHandler(sb.Cleanup))
		sweepGroup.POST("", handlers.CleanupSweepHandler(sb.Cleanup))
	}

	r.POST("/send-email",
		middleware.AuthMiddleware(), middleware.AdminMiddleware(),
		handlers.SendEmailHandler(sb.Mailer))
}

// RegisterAIRoutes registers AI endpoints.
func RegisterAIRoutes(r *gin.Engine, sb *ServiceBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		api.POST("/inventory-insights", handlers.InventoryInsightsHandler(sb.Agent))
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Maitred at your service"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, sb *ServiceBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAgentRoutes(r, sb)
	RegisterReservationRoutes(r, sb)
	RegisterAdminRoutes(r, sb)
	RegisterAIRoutes(r, sb)
	RegisterHealthRoute(r)
}
