package models

import "time"

// InventoryItem is a stocked ingredient or supply.
type InventoryItem struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	CategoryID string    `bson:"category_id,omitempty" json:"category_id,omitempty"`
	SupplierID string    `bson:"supplier_id,omitempty" json:"supplier_id,omitempty"`
	Quantity   float64   `bson:"quantity" json:"quantity"`
	Unit       string    `bson:"unit" json:"unit"` // e.g. "kg", "bottle"
	ReorderAt  float64   `bson:"reorder_at" json:"reorder_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// LowStock reports whether the item has fallen to its reorder threshold.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderAt
}

// InventoryCategory groups items for reporting.
type InventoryCategory struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// InventoryTransaction is one stock movement.
type InventoryTransaction struct {
	ID        string    `bson:"id" json:"id"`
	ItemID    string    `bson:"item_id" json:"item_id"`
	Delta     float64   `bson:"delta" json:"delta"` // positive = received, negative = used
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// InventoryPrediction is a model-produced usage forecast for an item.
type InventoryPrediction struct {
	ID          string    `bson:"id" json:"id"`
	ItemID      string    `bson:"item_id" json:"item_id"`
	PredictedAt time.Time `bson:"predicted_at" json:"predicted_at"`
	DaysLeft    float64   `bson:"days_left" json:"days_left"`
	Note        string    `bson:"note,omitempty" json:"note,omitempty"`
}

// Supplier is a vendor for inventory items.
type Supplier struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// InventorySummary is the aggregate shape used by the admin dashboard and
// the AI insights prompt.
type InventorySummary struct {
	TotalItems    int             `json:"total_items"`
	LowStockItems []InventoryItem `json:"low_stock_items"`
	Categories    int             `json:"categories"`
	Suppliers     int             `json:"suppliers"`
}
