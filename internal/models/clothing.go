package models

// ClothingCategory represents the garment family a clothing type belongs to
type ClothingCategory string

const (
	CategoryShirt       ClothingCategory = "shirt"
	CategoryPants       ClothingCategory = "pants"
	CategoryDress       ClothingCategory = "dress"
	CategoryJacket      ClothingCategory = "jacket"
	CategoryAccessories ClothingCategory = "accessories"
)

// ClothingType represents a garment category the shop can produce.
// It is immutable reference data: complexity is on a 1-10 scale and
// EstimatedTime is the per-unit production time in minutes.
type ClothingType struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Category         ClothingCategory `json:"category"`
	Complexity       int              `json:"complexity"`
	EstimatedTime    int              `json:"estimated_time"`
	RequiredMachines []string         `json:"required_machines"`
}
