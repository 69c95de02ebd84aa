package models

// TimeValueType distinguishes fixed numeric time values from
// formula-as-string ones. Formulas are opaque display strings; nothing in
// the system evaluates them numerically.
type TimeValueType string

const (
	TimeValueFixed   TimeValueType = "fixed"
	TimeValueFormula TimeValueType = "formula"
)

// ProductionTimeCategory represents a named reference value used for
// production time estimation.
type ProductionTimeCategory struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Value       string        `json:"value"`
	Type        TimeValueType `json:"type"`
	Unit        string        `json:"unit,omitempty"`
	Description string        `json:"description,omitempty"`
}

// ErrorTimeCategory represents a named category of recurring time loss
// (machine jams, thread breaks, ...) used for error time tracking.
type ErrorTimeCategory struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Description string  `json:"description,omitempty"`
	Frequency   string  `json:"frequency,omitempty"`
}
