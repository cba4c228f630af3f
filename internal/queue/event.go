// Package queue defines message payloads exchanged over the message broker
// and the consumer that audits them.
package queue

// LayoutSavedQueue is the durable queue layout.saved events are routed to.
const LayoutSavedQueue = "layout.saved"

// LayoutSavedEvent is published after a layout document was persisted.
// It carries enough to audit the save without querying the database.
type LayoutSavedEvent struct {
	LayoutID      string         `json:"layout_id"`
	Name          string         `json:"name"`
	Capacity      int            `json:"capacity"`
	OccupiedCells int            `json:"occupied_cells"`
	RowCount      int            `json:"row_count"`
	ColumnCount   int            `json:"column_count"`
	TierCounts    map[string]int `json:"tier_counts"`
	TotalRevenue  float64        `json:"total_revenue"`
	SavedAt       string         `json:"saved_at"`
}
