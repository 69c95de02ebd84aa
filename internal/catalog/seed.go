// Package catalog holds the seed reference data the shop starts with:
// clothing types, the initial machine park, open orders, description tags,
// operators and the time categories used for estimation. It has no
// behavior; every function returns a fresh copy so callers can mutate
// their repositories freely.
package catalog

import (
	"time"

	"atelier/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ClothingTypes returns the garment catalog.
func ClothingTypes() []models.ClothingType {
	return []models.ClothingType{
		{
			ID:               "shirt-casual",
			Name:             "Casual Shirt",
			Category:         models.CategoryShirt,
			Complexity:       3,
			EstimatedTime:    45,
			RequiredMachines: []string{"sewing-basic", "sewing-advanced"},
		},
		{
			ID:               "shirt-formal",
			Name:             "Formal Shirt",
			Category:         models.CategoryShirt,
			Complexity:       4,
			EstimatedTime:    60,
			RequiredMachines: []string{"sewing-advanced", "pressing"},
		},
		{
			ID:               "jeans",
			Name:             "Jeans",
			Category:         models.CategoryPants,
			Complexity:       5,
			EstimatedTime:    90,
			RequiredMachines: []string{"sewing-heavy", "riveting"},
		},
		{
			ID:               "dress-summer",
			Name:             "Summer Dress",
			Category:         models.CategoryDress,
			Complexity:       4,
			EstimatedTime:    75,
			RequiredMachines: []string{"sewing-advanced", "overlocking"},
		},
		{
			ID:               "jacket-blazer",
			Name:             "Blazer",
			Category:         models.CategoryJacket,
			Complexity:       6,
			EstimatedTime:    120,
			RequiredMachines: []string{"sewing-advanced", "pressing", "buttonhole"},
		},
	}
}

// ClothingTypeByID looks a garment up in the catalog.
func ClothingTypeByID(id string) (models.ClothingType, bool) {
	for _, ct := range ClothingTypes() {
		if ct.ID == id {
			return ct, true
		}
	}
	return models.ClothingType{}, false
}

// MachineTypes lists the machine type codes the shop recognizes.
func MachineTypes() []string {
	return []string{
		"sewing-basic",
		"sewing-advanced",
		"sewing-heavy",
		"pressing",
		"overlocking",
		"riveting",
		"buttonhole",
		"embroidery",
		"cutting",
	}
}

// capabilitiesFor collects the clothing types a machine of the given type
// code can produce.
func capabilitiesFor(machineType string, types []models.ClothingType) []models.ClothingType {
	var caps []models.ClothingType
	for _, ct := range types {
		for _, required := range ct.RequiredMachines {
			if required == machineType {
				caps = append(caps, ct)
				break
			}
		}
	}
	return caps
}

// Machines returns the initial machine park. Brother X-Series starts busy
// on order-001 and Steam Master starts under maintenance, matching the
// state of the floor the dashboard opens on.
func Machines() []models.Machine {
	types := ClothingTypes()
	return []models.Machine{
		{
			ID:              "machine-001",
			Name:            "Singer Pro 9000",
			Type:            "sewing-basic",
			Status:          models.MachineStatusAvailable,
			Capabilities:    capabilitiesFor("sewing-basic", types),
			Efficiency:      92,
			MaintenanceDate: date(2024, time.February, 15),
			Location:        "Zone A",
		},
		{
			ID:              "machine-002",
			Name:            "Brother X-Series",
			Type:            "sewing-advanced",
			Status:          models.MachineStatusBusy,
			Capabilities:    capabilitiesFor("sewing-advanced", types),
			CurrentOrder:    "order-001",
			Efficiency:      88,
			MaintenanceDate: date(2024, time.January, 20),
			Location:        "Zone A",
		},
		{
			ID:              "machine-003",
			Name:            "Industrial Heavy",
			Type:            "sewing-heavy",
			Status:          models.MachineStatusAvailable,
			Capabilities:    capabilitiesFor("sewing-heavy", types),
			Efficiency:      85,
			MaintenanceDate: date(2024, time.March, 1),
			Location:        "Zone B",
		},
		{
			ID:              "machine-004",
			Name:            "Steam Master",
			Type:            "pressing",
			Status:          models.MachineStatusMaintenance,
			Capabilities:    capabilitiesFor("pressing", types),
			Efficiency:      95,
			MaintenanceDate: date(2024, time.January, 25),
			Location:        "Zone C",
		},
		{
			ID:              "machine-005",
			Name:            "Overlock Pro",
			Type:            "overlocking",
			Status:          models.MachineStatusAvailable,
			Capabilities:    capabilitiesFor("overlocking", types),
			Efficiency:      90,
			MaintenanceDate: date(2024, time.February, 10),
			Location:        "Zone A",
		},
		{
			ID:              "machine-006",
			Name:            "Rivet Master",
			Type:            "riveting",
			Status:          models.MachineStatusAvailable,
			Capabilities:    capabilitiesFor("riveting", types),
			Efficiency:      87,
			MaintenanceDate: date(2024, time.January, 30),
			Location:        "Zone B",
		},
	}
}

// Orders returns the initial order book. order-001 is mid-production on
// machine-002 so a freshly started server resumes its simulation.
func Orders() []models.Order {
	types := ClothingTypes()
	return []models.Order{
		{
			ID:                "order-001",
			CustomerName:      "Fashion Boutique Ltd",
			ClothingType:      types[1], // Formal Shirt
			Quantity:          50,
			Priority:          models.PriorityHigh,
			OrderDate:         date(2024, time.January, 15),
			DueDate:           date(2024, time.January, 25),
			Status:            models.OrderStatusInProduction,
			AssignedMachine:   "machine-002",
			EstimatedDuration: 3000,
			CompletedQuantity: 25,
		},
		{
			ID:                "order-002",
			CustomerName:      "Urban Wear Co",
			ClothingType:      types[2], // Jeans
			Quantity:          30,
			Priority:          models.PriorityMedium,
			OrderDate:         date(2024, time.January, 16),
			DueDate:           date(2024, time.January, 30),
			Status:            models.OrderStatusPending,
			EstimatedDuration: 2700,
		},
		{
			ID:                "order-003",
			CustomerName:      "Summer Collection",
			ClothingType:      types[3], // Summer Dress
			Quantity:          25,
			Priority:          models.PriorityUrgent,
			OrderDate:         date(2024, time.January, 17),
			DueDate:           date(2024, time.January, 22),
			Status:            models.OrderStatusPending,
			EstimatedDuration: 1875,
		},
		{
			ID:                "order-004",
			CustomerName:      "Corporate Styles",
			ClothingType:      types[4], // Blazer
			Quantity:          15,
			Priority:          models.PriorityHigh,
			OrderDate:         date(2024, time.January, 18),
			DueDate:           date(2024, time.January, 28),
			Status:            models.OrderStatusPending,
			EstimatedDuration: 1800,
		},
		{
			ID:                "order-005",
			CustomerName:      "Casual Trends",
			ClothingType:      types[0], // Casual Shirt
			Quantity:          40,
			Priority:          models.PriorityLow,
			OrderDate:         date(2024, time.January, 19),
			DueDate:           date(2024, time.February, 5),
			Status:            models.OrderStatusPending,
			EstimatedDuration: 1800,
		},
	}
}

// DescriptionTags returns the built-in tag set.
func DescriptionTags() []models.DescriptionTag {
	return []models.DescriptionTag{
		{ID: "tag-gb", Code: "GB", Label: "Grande Broderie", Color: "purple"},
		{ID: "tag-pb", Code: "PB", Label: "Petite Broderie", Color: "violet"},
		{ID: "tag-del", Code: "DEL", Label: "Délicat", Color: "rose"},
		{ID: "tag-urg", Code: "URG", Label: "Urgent", Color: "red"},
		{ID: "tag-exp", Code: "EXP", Label: "Export", Color: "blue"},
		{ID: "tag-eco", Code: "ECO", Label: "Tissu recyclé", Color: "green"},
	}
}

// Operators returns the initial operator roster.
func Operators() []models.Operator {
	tags := DescriptionTags()
	return []models.Operator{
		{ID: "operator-001", Name: "Marie Dubois", Language: "fr", Strengths: []models.DescriptionTag{tags[0], tags[2]}},
		{ID: "operator-002", Name: "Amira Benali", Language: "fr", Strengths: []models.DescriptionTag{tags[1]}},
		{ID: "operator-003", Name: "Linh Tran", Language: "en", Strengths: []models.DescriptionTag{tags[3], tags[4]}},
	}
}

// ProductionTimeCategories returns the seeded production time reference
// values. Formula values are opaque strings shown as-is to the user.
func ProductionTimeCategories() []models.ProductionTimeCategory {
	return []models.ProductionTimeCategory{
		{ID: "pt-setup", Name: "Machine Setup", Value: "12", Type: models.TimeValueFixed, Unit: "minutes", Description: "Threading and calibration before a run"},
		{ID: "pt-changeover", Name: "Changeover", Value: "8", Type: models.TimeValueFixed, Unit: "minutes", Description: "Switching between clothing types"},
		{ID: "pt-unit", Name: "Unit Time", Value: "base * complexity / 10", Type: models.TimeValueFormula, Unit: "minutes", Description: "Per-unit time scaled by garment complexity"},
		{ID: "pt-finishing", Name: "Finishing", Value: "quantity * 1.5", Type: models.TimeValueFormula, Unit: "minutes", Description: "Inspection and packing per batch"},
	}
}

// ErrorTimeCategories returns the seeded error time reference values.
func ErrorTimeCategories() []models.ErrorTimeCategory {
	return []models.ErrorTimeCategory{
		{ID: "et-thread", Name: "Thread Break", Value: 3, Unit: "minutes", Description: "Rethreading after a break", Frequency: "hourly"},
		{ID: "et-jam", Name: "Machine Jam", Value: 10, Unit: "minutes", Description: "Clearing a fabric jam", Frequency: "daily"},
		{ID: "et-needle", Name: "Needle Change", Value: 5, Unit: "minutes", Description: "Replacing a dulled or broken needle", Frequency: "daily"},
		{ID: "et-bobbin", Name: "Bobbin Refill", Value: 2, Unit: "minutes", Frequency: "hourly"},
	}
}
