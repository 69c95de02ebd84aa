package production

import (
	"math"

	"atelier/internal/models"
)

// computeStats derives the dashboard counters from the current machine and
// order collections. Pure function: no caching, no incremental counters.
func computeStats(machines []models.Machine, orders []models.Order) models.ProductionStats {
	stats := models.ProductionStats{
		TotalOrders: len(orders),
	}

	for _, order := range orders {
		switch order.Status {
		case models.OrderStatusCompleted:
			stats.CompletedOrders++
		case models.OrderStatusInProduction:
			stats.ActiveProductions++
		}
	}

	if len(machines) == 0 {
		return stats
	}

	sum := 0
	for _, machine := range machines {
		if machine.Status == models.MachineStatusAvailable {
			stats.AvailableMachines++
		}
		sum += machine.Efficiency
	}
	stats.Efficiency = int(math.Round(float64(sum) / float64(len(machines))))

	return stats
}
