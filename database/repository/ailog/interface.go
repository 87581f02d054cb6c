// File: database/repository/ailog/interface.go
package aiLogRepo

import "maitred/models"

// AIActionLogRepository records agent activity for the admin audit trail.
type AIActionLogRepository interface {
	Append(entry *models.AIActionLog) error
	Recent(limit int) ([]models.AIActionLog, error)
}
