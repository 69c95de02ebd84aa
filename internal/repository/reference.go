package repository

import (
	"fmt"
	"strings"
	"sync"

	"atelier/internal/models"
)

// OperatorRepository holds the operator roster, keyed by ID.
type OperatorRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.Operator
	index []string
}

// NewOperatorRepository creates an empty operator repository.
func NewOperatorRepository() *OperatorRepository {
	return &OperatorRepository{byID: make(map[string]*models.Operator)}
}

// Add inserts a new operator. The ID must be unique.
func (r *OperatorRepository) Add(op models.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[op.ID]; exists {
		return fmt.Errorf("operator %q: %w", op.ID, ErrDuplicateID)
	}
	o := op
	r.byID[o.ID] = &o
	r.index = append(r.index, o.ID)
	return nil
}

// Get returns a copy of the operator with the given ID.
func (r *OperatorRepository) Get(id string) (models.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.byID[id]
	if !exists {
		return models.Operator{}, fmt.Errorf("operator %q: %w", id, ErrNotFound)
	}
	return *o, nil
}

// Update replaces the stored operator with the same ID.
func (r *OperatorRepository) Update(op models.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[op.ID]; !exists {
		return fmt.Errorf("operator %q: %w", op.ID, ErrNotFound)
	}
	o := op
	r.byID[o.ID] = &o
	return nil
}

// List returns copies of all operators in insertion order.
func (r *OperatorRepository) List() []models.Operator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]models.Operator, 0, len(r.index))
	for _, id := range r.index {
		ops = append(ops, *r.byID[id])
	}
	return ops
}

// TagRepository holds description tags, keyed by ID. Tag codes are unique
// case-insensitively.
type TagRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.DescriptionTag
	index []string
}

// NewTagRepository creates an empty tag repository.
func NewTagRepository() *TagRepository {
	return &TagRepository{byID: make(map[string]*models.DescriptionTag)}
}

// Add inserts a new tag. Both the ID and the code must be unique.
func (r *TagRepository) Add(tag models.DescriptionTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[tag.ID]; exists {
		return fmt.Errorf("tag %q: %w", tag.ID, ErrDuplicateID)
	}
	if id := r.findCode(tag.Code, tag.ID); id != "" {
		return fmt.Errorf("tag code %q: %w", tag.Code, ErrDuplicateID)
	}
	t := tag
	r.byID[t.ID] = &t
	r.index = append(r.index, t.ID)
	return nil
}

// Update replaces the stored tag with the same ID, keeping codes unique.
func (r *TagRepository) Update(tag models.DescriptionTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[tag.ID]; !exists {
		return fmt.Errorf("tag %q: %w", tag.ID, ErrNotFound)
	}
	if id := r.findCode(tag.Code, tag.ID); id != "" {
		return fmt.Errorf("tag code %q: %w", tag.Code, ErrDuplicateID)
	}
	t := tag
	r.byID[t.ID] = &t
	return nil
}

// Delete removes the tag with the given ID.
func (r *TagRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return fmt.Errorf("tag %q: %w", id, ErrNotFound)
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

// List returns copies of all tags in insertion order.
func (r *TagRepository) List() []models.DescriptionTag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]models.DescriptionTag, 0, len(r.index))
	for _, id := range r.index {
		tags = append(tags, *r.byID[id])
	}
	return tags
}

// findCode returns the ID of the tag holding the given code, ignoring
// excludeID. Caller must hold the lock.
func (r *TagRepository) findCode(code, excludeID string) string {
	for id, t := range r.byID {
		if id != excludeID && strings.EqualFold(t.Code, code) {
			return id
		}
	}
	return ""
}
