// File: handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	aiLogRepo "maitred/database/repository/ailog"
	inventoryRepo "maitred/database/repository/inventory"
	tableRepo "maitred/database/repository/table"
	"maitred/services/booking"
	"maitred/services/cleanup"
	"maitred/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminListReservationsHandler returns every reservation for the admin
// dashboard. It runs an opportunistic retention sweep first so the view
// never shows rows that are due for removal; a failed sweep is logged
// and the listing proceeds.
func AdminListReservationsHandler(svc booking.BookingService, cleanupSvc cleanup.CleanupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cleanupSvc != nil {
			if result := cleanupSvc.Sweep(c.Request.Context()); !result.Success {
				utils.GetLogger().Warn("admin: opportunistic sweep failed", zap.String("message", result.Message))
			}
		}

		reservations, err := svc.ListAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reservations": reservations, "count": len(reservations)})
	}
}

// AdminUpdateStatusHandler moves a reservation through its lifecycle and
// returns the updated row.
func AdminUpdateStatusHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		res, err := svc.UpdateStatus(c.Param("id"), req.Status)
		if err != nil {
			if booking.IsValidation(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "reservation": res})
	}
}

// AdminReservationStatsHandler returns the reservations-per-day counts
// that feed the dashboard chart.
func AdminReservationStatsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := svc.CountPerDay()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate reservations", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"perDay": counts})
	}
}

// AdminTablesHandler lists the dining room layout for staff.
func AdminTablesHandler(repo tableRepo.TableRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables, err := repo.GetAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tables", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tables": tables, "count": len(tables)})
	}
}

// AdminInventorySummaryHandler returns the stock overview plus the
// latest stock movements for the admin dashboard.
func AdminInventorySummaryHandler(repo inventoryRepo.InventoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := repo.Summary()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory summary", "details": err.Error()})
			return
		}

		transactions, err := repo.RecentTransactions(20)
		if err != nil {
			// Movements enrich the view but the summary stands alone.
			utils.GetLogger().Warn("admin: failed to load inventory transactions", zap.Error(err))
			transactions = nil
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary, "recentTransactions": transactions})
	}
}

// AdminAIActionLogHandler returns the recent agent audit trail.
func AdminAIActionLogHandler(repo aiLogRepo.AIActionLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}

		entries, err := repo.Recent(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load action log", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
	}
}
