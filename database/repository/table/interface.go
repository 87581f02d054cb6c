// File: database/repository/table/interface.go
package tableRepo

import "maitred/models"

// TableRepository defines data access for dining tables.
type TableRepository interface {
	GetAll() ([]models.DiningTable, error)

	// GetActiveWithCapacity returns active tables seating at least
	// partySize guests, smallest capacity first.
	GetActiveWithCapacity(partySize int) ([]models.DiningTable, error)
}
