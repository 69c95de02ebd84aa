// Package monitoring exports the engine's state and progress as
// Prometheus metrics on a dedicated registry.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"atelier/internal/models"
	"atelier/internal/production"
)

// Collector holds the production floor metrics
type Collector struct {
	registry *prometheus.Registry

	totalOrders       prometheus.Gauge
	completedOrders   prometheus.Gauge
	activeProductions prometheus.Gauge
	availableMachines prometheus.Gauge
	machineEfficiency prometheus.Gauge

	progressTicks  *prometheus.CounterVec
	completionTime *prometheus.HistogramVec
}

// NewCollector creates a collector with all metrics registered on a fresh
// registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		totalOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atelier_orders_total",
			Help: "Number of orders in the system",
		}),
		completedOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atelier_orders_completed",
			Help: "Number of completed orders",
		}),
		activeProductions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atelier_productions_active",
			Help: "Number of orders currently in production",
		}),
		availableMachines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atelier_machines_available",
			Help: "Number of available machines",
		}),
		machineEfficiency: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atelier_machine_efficiency_percent",
			Help: "Mean efficiency of the machine park",
		}),
		progressTicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelier_progress_ticks_total",
				Help: "Progress ticks applied to in-production orders",
			},
			[]string{"priority"},
		),
		completionTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "atelier_order_completion_time_seconds",
				Help:    "Time from order creation to completion",
				Buckets: prometheus.LinearBuckets(0, 300, 20), // 5-minute buckets
			},
			[]string{"category", "priority"},
		),
	}

	for _, metric := range []prometheus.Collector{
		c.totalOrders,
		c.completedOrders,
		c.activeProductions,
		c.availableMachines,
		c.machineEfficiency,
		c.progressTicks,
		c.completionTime,
	} {
		registry.MustRegister(metric)
	}

	return c
}

// Attach subscribes the collector to the engine's hooks so gauges follow
// every mutation and counters follow the simulation.
func (c *Collector) Attach(engine *production.Engine) {
	engine.OnChange(func(s production.Snapshot) {
		c.RecordStats(s.Stats)
	})
	engine.OnTick(c.RecordTick)
	engine.OnComplete(c.RecordCompletion)
	c.RecordStats(engine.Stats())
}

// RecordStats sets the dashboard gauges from the aggregate counters.
func (c *Collector) RecordStats(stats models.ProductionStats) {
	c.totalOrders.Set(float64(stats.TotalOrders))
	c.completedOrders.Set(float64(stats.CompletedOrders))
	c.activeProductions.Set(float64(stats.ActiveProductions))
	c.availableMachines.Set(float64(stats.AvailableMachines))
	c.machineEfficiency.Set(float64(stats.Efficiency))
}

// RecordTick counts one progress increment for the order's priority.
func (c *Collector) RecordTick(order models.Order) {
	c.progressTicks.WithLabelValues(string(order.Priority)).Inc()
}

// RecordCompletion observes the wall time the order spent in the system.
func (c *Collector) RecordCompletion(order models.Order) {
	duration := time.Since(order.OrderDate).Seconds()
	c.completionTime.WithLabelValues(string(order.ClothingType.Category), string(order.Priority)).Observe(duration)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
