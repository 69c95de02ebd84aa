package models

// Operator represents a machine operator. Strengths are description tags
// marking areas of expertise; Language is an ISO language code used by the
// dashboard for display.
type Operator struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Language  string           `json:"language"`
	Strengths []DescriptionTag `json:"strengths,omitempty"`
}
