package models

// DiningTable is a bookable table in the dining room.
type DiningTable struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`         // e.g. "T4", "Patio 2"
	Capacity int    `bson:"capacity" json:"capacity"` // Maximum party size
	Active   bool   `bson:"active" json:"active"`     // Inactive tables are never assigned
}
