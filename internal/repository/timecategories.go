package repository

import (
	"fmt"
	"sync"

	"atelier/internal/models"
)

// ProductionTimeRepository holds production time categories, keyed by ID.
type ProductionTimeRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.ProductionTimeCategory
	index []string
}

// NewProductionTimeRepository creates an empty repository.
func NewProductionTimeRepository() *ProductionTimeRepository {
	return &ProductionTimeRepository{byID: make(map[string]*models.ProductionTimeCategory)}
}

// Add inserts a new category. The ID must be unique.
func (r *ProductionTimeRepository) Add(cat models.ProductionTimeCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[cat.ID]; exists {
		return fmt.Errorf("production time category %q: %w", cat.ID, ErrDuplicateID)
	}
	c := cat
	r.byID[c.ID] = &c
	r.index = append(r.index, c.ID)
	return nil
}

// Update replaces the stored category with the same ID.
func (r *ProductionTimeRepository) Update(cat models.ProductionTimeCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[cat.ID]; !exists {
		return fmt.Errorf("production time category %q: %w", cat.ID, ErrNotFound)
	}
	c := cat
	r.byID[c.ID] = &c
	return nil
}

// Delete removes the category with the given ID.
func (r *ProductionTimeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return fmt.Errorf("production time category %q: %w", id, ErrNotFound)
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

// List returns copies of all categories in insertion order.
func (r *ProductionTimeRepository) List() []models.ProductionTimeCategory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make([]models.ProductionTimeCategory, 0, len(r.index))
	for _, id := range r.index {
		cats = append(cats, *r.byID[id])
	}
	return cats
}

// ErrorTimeRepository holds error time categories, keyed by ID.
type ErrorTimeRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.ErrorTimeCategory
	index []string
}

// NewErrorTimeRepository creates an empty repository.
func NewErrorTimeRepository() *ErrorTimeRepository {
	return &ErrorTimeRepository{byID: make(map[string]*models.ErrorTimeCategory)}
}

// Add inserts a new category. The ID must be unique.
func (r *ErrorTimeRepository) Add(cat models.ErrorTimeCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[cat.ID]; exists {
		return fmt.Errorf("error time category %q: %w", cat.ID, ErrDuplicateID)
	}
	c := cat
	r.byID[c.ID] = &c
	r.index = append(r.index, c.ID)
	return nil
}

// Update replaces the stored category with the same ID.
func (r *ErrorTimeRepository) Update(cat models.ErrorTimeCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[cat.ID]; !exists {
		return fmt.Errorf("error time category %q: %w", cat.ID, ErrNotFound)
	}
	c := cat
	r.byID[c.ID] = &c
	return nil
}

// Delete removes the category with the given ID.
func (r *ErrorTimeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return fmt.Errorf("error time category %q: %w", id, ErrNotFound)
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

// List returns copies of all categories in insertion order.
func (r *ErrorTimeRepository) List() []models.ErrorTimeCategory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make([]models.ErrorTimeCategory, 0, len(r.index))
	for _, id := range r.index {
		cats = append(cats, *r.byID[id])
	}
	return cats
}
