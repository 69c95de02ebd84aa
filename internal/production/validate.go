package production

import (
	"time"

	"atelier/internal/models"
)

// OrderSpec carries the caller-supplied fields for a new order. The order
// number doubles as the order's ID.
type OrderSpec struct {
	OrderNumber     string                  `json:"order_number"`
	CustomerName    string                  `json:"customer_name"`
	ClothingType    models.ClothingType     `json:"clothing_type"`
	Quantity        int                     `json:"quantity"`
	Priority        models.OrderPriority    `json:"priority"`
	DueDate         time.Time               `json:"due_date"`
	DescriptionTags []models.DescriptionTag `json:"description_tags,omitempty"`
}

// MachineSpec carries the caller-supplied fields for a new machine. ID is
// optional; a fresh one is generated when empty.
type MachineSpec struct {
	ID              string                  `json:"id,omitempty"`
	Name            string                  `json:"name"`
	Type            string                  `json:"type"`
	Location        string                  `json:"location"`
	Efficiency      int                     `json:"efficiency"`
	MaintenanceDate time.Time               `json:"maintenance_date"`
	Capabilities    []models.ClothingType   `json:"capabilities"`
	DescriptionTags []models.DescriptionTag `json:"description_tags,omitempty"`
}

var validPriorities = map[models.OrderPriority]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
	models.PriorityUrgent: true,
}

// ValidateOrderSpec checks a new-order submission against the rules the
// order form enforces. It returns a *ValidationError listing every invalid
// field, or nil.
func ValidateOrderSpec(spec OrderSpec, now time.Time) error {
	var fields []FieldError

	if spec.OrderNumber == "" {
		fields = append(fields, FieldError{"order_number", "order number is required"})
	}
	if spec.CustomerName == "" {
		fields = append(fields, FieldError{"customer_name", "customer name is required"})
	}
	if spec.ClothingType.ID == "" {
		fields = append(fields, FieldError{"clothing_type", "clothing type is required"})
	}
	if spec.Quantity < 1 {
		fields = append(fields, FieldError{"quantity", "quantity must be at least 1"})
	}
	if !validPriorities[spec.Priority] {
		fields = append(fields, FieldError{"priority", "priority must be low, medium, high or urgent"})
	}
	if spec.DueDate.IsZero() {
		fields = append(fields, FieldError{"due_date", "due date is required"})
	} else if spec.DueDate.Before(now) {
		fields = append(fields, FieldError{"due_date", "due date cannot be in the past"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateMachineSpec checks a new-machine submission. Every rule here
// mirrors what the machine form enforces: required identity fields,
// efficiency within [1,100] and at least one capability.
func ValidateMachineSpec(spec MachineSpec) error {
	var fields []FieldError

	if spec.Name == "" {
		fields = append(fields, FieldError{"name", "machine name is required"})
	}
	if spec.Type == "" {
		fields = append(fields, FieldError{"type", "machine type is required"})
	}
	if spec.Location == "" {
		fields = append(fields, FieldError{"location", "location is required"})
	}
	if spec.Efficiency < 1 || spec.Efficiency > 100 {
		fields = append(fields, FieldError{"efficiency", "efficiency must be between 1 and 100"})
	}
	if spec.MaintenanceDate.IsZero() {
		fields = append(fields, FieldError{"maintenance_date", "maintenance date is required"})
	}
	if len(spec.Capabilities) == 0 {
		fields = append(fields, FieldError{"capabilities", "at least one capability must be selected"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateTag checks a description tag submission. Codes are at most four
// characters; uniqueness is enforced by the tag repository.
func ValidateTag(tag models.DescriptionTag) error {
	var fields []FieldError

	if tag.Code == "" {
		fields = append(fields, FieldError{"code", "code is required"})
	} else if len(tag.Code) > 4 {
		fields = append(fields, FieldError{"code", "code cannot exceed 4 characters"})
	}
	if tag.Label == "" {
		fields = append(fields, FieldError{"label", "label is required"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
