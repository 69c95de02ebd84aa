// Package repository provides the in-memory keyed collections that own all
// mutable entity state. Repositories enforce only structural invariants
// (unique IDs); business invariants such as machine occupancy belong to the
// scheduling engine.
package repository

import (
	"fmt"
	"sync"

	"atelier/internal/models"
)

// MachineRepository holds the current state of every machine, keyed by ID.
// List order is insertion order.
type MachineRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.Machine
	index []string
}

// NewMachineRepository creates an empty machine repository.
func NewMachineRepository() *MachineRepository {
	return &MachineRepository{
		byID: make(map[string]*models.Machine),
	}
}

// Add inserts a new machine. The ID must be unique.
func (r *MachineRepository) Add(machine models.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[machine.ID]; exists {
		return fmt.Errorf("machine %q: %w", machine.ID, ErrDuplicateID)
	}
	m := machine
	r.byID[m.ID] = &m
	r.index = append(r.index, m.ID)
	return nil
}

// Get returns a copy of the machine with the given ID.
func (r *MachineRepository) Get(id string) (models.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.byID[id]
	if !exists {
		return models.Machine{}, fmt.Errorf("machine %q: %w", id, ErrNotFound)
	}
	return *m, nil
}

// Update replaces the stored machine with the same ID.
func (r *MachineRepository) Update(machine models.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[machine.ID]; !exists {
		return fmt.Errorf("machine %q: %w", machine.ID, ErrNotFound)
	}
	m := machine
	r.byID[m.ID] = &m
	return nil
}

// Delete removes the machine with the given ID.
func (r *MachineRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return fmt.Errorf("machine %q: %w", id, ErrNotFound)
	}
	delete(r.byID, id)
	for i, existing := range r.index {
		if existing == id {
			r.index = append(r.index[:i], r.index[i+1:]...)
			break
		}
	}
	return nil
}

// List returns copies of all machines in insertion order.
func (r *MachineRepository) List() []models.Machine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	machines := make([]models.Machine, 0, len(r.index))
	for _, id := range r.index {
		machines = append(machines, *r.byID[id])
	}
	return machines
}

// Len returns the number of machines.
func (r *MachineRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
