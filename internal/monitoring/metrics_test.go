package monitoring

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"atelier/internal/models"
)

func TestRecordStats(t *testing.T) {
	c := NewCollector()
	c.RecordStats(models.ProductionStats{
		TotalOrders:       5,
		CompletedOrders:   2,
		ActiveProductions: 1,
		AvailableMachines: 4,
		Efficiency:        90,
	})

	if got := testutil.ToFloat64(c.totalOrders); got != 5 {
		t.Errorf("atelier_orders_total = %v, want 5", got)
	}
	if got := testutil.ToFloat64(c.availableMachines); got != 4 {
		t.Errorf("atelier_machines_available = %v, want 4", got)
	}
	if got := testutil.ToFloat64(c.machineEfficiency); got != 90 {
		t.Errorf("atelier_machine_efficiency_percent = %v, want 90", got)
	}
}

func TestRecordTickCountsByPriority(t *testing.T) {
	c := NewCollector()
	order := models.Order{ID: "ORD-1", Priority: models.PriorityHigh}

	c.RecordTick(order)
	c.RecordTick(order)

	if got := testutil.ToFloat64(c.progressTicks.WithLabelValues("high")); got != 2 {
		t.Errorf("atelier_progress_ticks_total{priority=high} = %v, want 2", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.RecordCompletion(models.Order{
		ID:        "ORD-1",
		Priority:  models.PriorityMedium,
		OrderDate: time.Now().Add(-time.Minute),
		ClothingType: models.ClothingType{
			ID:       "shirt-casual",
			Category: models.CategoryShirt,
		},
	})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "atelier_order_completion_time_seconds") {
		t.Error("exposition output is missing the completion time histogram")
	}
	if !strings.Contains(body, `priority="medium"`) {
		t.Error("exposition output is missing the priority label")
	}
}
