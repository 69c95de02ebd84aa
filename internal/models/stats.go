package models

// ProductionStats represents the aggregate counters shown on the dashboard.
// Efficiency is the mean machine efficiency rounded to the nearest integer,
// or 0 when there are no machines.
type ProductionStats struct {
	TotalOrders       int `json:"total_orders"`
	CompletedOrders   int `json:"completed_orders"`
	ActiveProductions int `json:"active_productions"`
	AvailableMachines int `json:"available_machines"`
	Efficiency        int `json:"efficiency"`
}
