package models

// DescriptionTag represents a short labeled annotation attached to machines,
// orders and operators for human-readable classification (e.g. "GB" for
// Grande Broderie). Tags are cosmetic to the scheduling engine.
type DescriptionTag struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}
