package models

import "time"

// OrderStatus represents the possible states of a production order
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusInProduction OrderStatus = "in-production"
	OrderStatusCompleted    OrderStatus = "completed"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// OrderPriority represents the urgency of an order
type OrderPriority string

const (
	PriorityLow    OrderPriority = "low"
	PriorityMedium OrderPriority = "medium"
	PriorityHigh   OrderPriority = "high"
	PriorityUrgent OrderPriority = "urgent"
)

// Order represents a production request for a quantity of one clothing
// type. EstimatedDuration is the unit time multiplied by quantity, in
// minutes. CompletedQuantity only grows while the order is in production
// and never exceeds Quantity.
type Order struct {
	ID                string           `json:"id"`
	CustomerName      string           `json:"customer_name"`
	ClothingType      ClothingType     `json:"clothing_type"`
	Quantity          int              `json:"quantity"`
	Priority          OrderPriority    `json:"priority"`
	OrderDate         time.Time        `json:"order_date"`
	DueDate           time.Time        `json:"due_date"`
	Status            OrderStatus      `json:"status"`
	AssignedMachine   string           `json:"assigned_machine,omitempty"`
	EstimatedDuration int              `json:"estimated_duration"`
	CompletedQuantity int              `json:"completed_quantity"`
	DescriptionTags   []DescriptionTag `json:"description_tags,omitempty"`
}
