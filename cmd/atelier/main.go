package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/internal/api"
	"atelier/internal/catalog"
	"atelier/internal/config"
	"atelier/internal/monitoring"
	"atelier/internal/production"
	"atelier/internal/repository"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *metricsPort != 0 {
		cfg.MetricsConfig.Port = *metricsPort
	}

	// Seed the repositories with the initial shop floor.
	machines := repository.NewMachineRepository()
	for _, m := range catalog.Machines() {
		if err := machines.Add(m); err != nil {
			log.Fatalf("Failed to seed machine %s: %v", m.ID, err)
		}
	}
	orders := repository.NewOrderRepository()
	for _, o := range catalog.Orders() {
		if err := orders.Add(o); err != nil {
			log.Fatalf("Failed to seed order %s: %v", o.ID, err)
		}
	}

	refs := api.ReferenceRepositories{
		Operators:       repository.NewOperatorRepository(),
		Tags:            repository.NewTagRepository(),
		ProductionTimes: repository.NewProductionTimeRepository(),
		ErrorTimes:      repository.NewErrorTimeRepository(),
	}
	seedReferenceData(refs)

	scheduler := production.NewTimerScheduler(
		cfg.Simulation.InitialDelay.Std(),
		cfg.Simulation.TickInterval.Std(),
	)
	engine := production.NewEngine(machines, orders, scheduler, cfg.ReassignmentPolicy)

	// Metrics server
	if cfg.MetricsConfig.Enabled {
		collector := monitoring.NewCollector()
		collector.Attach(engine)
		go startMetricsServer(cfg.MetricsConfig.Port, cfg.MetricsConfig.Path, collector)
	}

	server := api.NewServer(engine, refs)

	// Orders seeded mid-production pick their simulations back up.
	if resumed := engine.ResumeInProduction(); resumed > 0 {
		log.Printf("Resumed %d in-production order(s)", resumed)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		engine.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func seedReferenceData(refs api.ReferenceRepositories) {
	for _, tag := range catalog.DescriptionTags() {
		if err := refs.Tags.Add(tag); err != nil {
			log.Fatalf("Failed to seed tag %s: %v", tag.Code, err)
		}
	}
	for _, op := range catalog.Operators() {
		if err := refs.Operators.Add(op); err != nil {
			log.Fatalf("Failed to seed operator %s: %v", op.ID, err)
		}
	}
	for _, cat := range catalog.ProductionTimeCategories() {
		if err := refs.ProductionTimes.Add(cat); err != nil {
			log.Fatalf("Failed to seed production time %s: %v", cat.ID, err)
		}
	}
	for _, cat := range catalog.ErrorTimeCategories() {
		if err := refs.ErrorTimes.Add(cat); err != nil {
			log.Fatalf("Failed to seed error time %s: %v", cat.ID, err)
		}
	}
}

func startMetricsServer(port int, path string, collector *monitoring.Collector) {
	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(collector.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
