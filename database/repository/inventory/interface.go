// File: database/repository/inventory/interface.go
package inventoryRepo

import "maitred/models"

// InventoryRepository defines read access to the inventory collections.
// Inventory CRUD screens are presentation glue over the hosted store;
// the server only needs summary queries for the dashboard and the AI
// insights prompt.
type InventoryRepository interface {
	GetItems() ([]models.InventoryItem, error)
	GetLowStockItems() ([]models.InventoryItem, error)
	CountCategories() (int64, error)
	CountSuppliers() (int64, error)
	RecentTransactions(limit int) ([]models.InventoryTransaction, error)
	LatestPredictions(limit int) ([]models.InventoryPrediction, error)
	Summary() (*models.InventorySummary, error)
}
