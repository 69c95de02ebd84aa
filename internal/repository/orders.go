package repository

import (
	"fmt"
	"sync"

	"atelier/internal/models"
)

// OrderRepository holds the current state of every order, keyed by ID.
// Order IDs are human-assigned order numbers. List order is insertion
// order.
type OrderRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.Order
	index []string
}

// NewOrderRepository creates an empty order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		byID: make(map[string]*models.Order),
	}
}

// Add inserts a new order. The ID must be unique.
func (r *OrderRepository) Add(order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[order.ID]; exists {
		return fmt.Errorf("order %q: %w", order.ID, ErrDuplicateID)
	}
	o := order
	r.byID[o.ID] = &o
	r.index = append(r.index, o.ID)
	return nil
}

// Get returns a copy of the order with the given ID.
func (r *OrderRepository) Get(id string) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.byID[id]
	if !exists {
		return models.Order{}, fmt.Errorf("order %q: %w", id, ErrNotFound)
	}
	return *o, nil
}

// Update replaces the stored order with the same ID.
func (r *OrderRepository) Update(order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[order.ID]; !exists {
		return fmt.Errorf("order %q: %w", order.ID, ErrNotFound)
	}
	o := order
	r.byID[o.ID] = &o
	return nil
}

// List returns copies of all orders in insertion order.
func (r *OrderRepository) List() []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.index))
	for _, id := range r.index {
		orders = append(orders, *r.byID[id])
	}
	return orders
}

// Len returns the number of orders.
func (r *OrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
