// Package api exposes the production core over HTTP for the browser
// dashboard: JSON endpoints for every engine operation and reference
// collection, plus a WebSocket feed pushing state snapshots on every
// mutation.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/internal/catalog"
	"atelier/internal/production"
	"atelier/internal/repository"
)

// ReferenceRepositories groups the CRUD-only reference collections the API
// serves alongside the engine.
type ReferenceRepositories struct {
	Operators       *repository.OperatorRepository
	Tags            *repository.TagRepository
	ProductionTimes *repository.ProductionTimeRepository
	ErrorTimes      *repository.ErrorTimeRepository
}

// Server is the HTTP handler for the production dashboard API.
type Server struct {
	router *gin.Engine
	engine *production.Engine
	refs   ReferenceRepositories
	hub    *Hub
}

// NewServer creates the API server over the given engine and reference
// repositories, and subscribes the WebSocket hub to engine changes.
func NewServer(engine *production.Engine, refs ReferenceRepositories) *Server {
	server := &Server{
		router: gin.Default(),
		engine: engine,
		refs:   refs,
		hub:    NewHub(),
	}

	engine.OnChange(func(s production.Snapshot) {
		server.hub.Broadcast(s)
	})

	server.setupRoutes()
	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Atelier API is running"})
	})
	s.router.GET("/ws", s.handleWebSocket)

	v1 := s.router.Group("/api/v1")
	{
		// Orders and the assignment/production lifecycle
		v1.GET("/orders", s.ListOrders)
		v1.GET("/orders/:id", s.GetOrder)
		v1.POST("/orders", s.CreateOrder)
		v1.POST("/orders/:id/assign", s.AssignMachine)
		v1.POST("/orders/:id/start", s.StartProduction)
		v1.GET("/orders/:id/machines", s.CompatibleMachines)

		// Machine park
		v1.GET("/machines", s.ListMachines)
		v1.GET("/machines/:id", s.GetMachine)
		v1.POST("/machines", s.CreateMachine)
		v1.PUT("/machines/:id", s.UpdateMachine)
		v1.DELETE("/machines/:id", s.DeleteMachine)

		// Dashboard counters
		v1.GET("/stats", s.GetStats)

		// Catalog
		v1.GET("/clothing-types", s.ListClothingTypes)
		v1.GET("/machine-types", s.ListMachineTypes)

		// Reference data
		v1.GET("/operators", s.ListOperators)
		v1.POST("/operators", s.CreateOperator)
		v1.PUT("/operators/:id", s.UpdateOperator)

		v1.GET("/tags", s.ListTags)
		v1.POST("/tags", s.CreateTag)
		v1.PUT("/tags/:id", s.UpdateTag)
		v1.DELETE("/tags/:id", s.DeleteTag)

		v1.GET("/production-times", s.ListProductionTimes)
		v1.POST("/production-times", s.CreateProductionTime)
		v1.PUT("/production-times/:id", s.UpdateProductionTime)
		v1.DELETE("/production-times/:id", s.DeleteProductionTime)

		v1.GET("/error-times", s.ListErrorTimes)
		v1.POST("/error-times", s.CreateErrorTime)
		v1.PUT("/error-times/:id", s.UpdateErrorTime)
		v1.DELETE("/error-times/:id", s.DeleteErrorTime)
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// ListClothingTypes serves the garment catalog the order form offers.
func (s *Server) ListClothingTypes(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.ClothingTypes())
}

// ListMachineTypes serves the machine type codes the machine form offers.
func (s *Server) ListMachineTypes(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.MachineTypes())
}

// writeError maps core errors onto HTTP statuses: validation errors are
// 400 with the field list, missing entities are 404, business-rule
// conflicts are 409.
func writeError(c *gin.Context, err error) {
	var vErr *production.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "fields": vErr.Fields})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateID),
		errors.Is(err, production.ErrMachineBusy),
		errors.Is(err, production.ErrOrderAlreadyAssigned),
		errors.Is(err, production.ErrOrderNotPending),
		errors.Is(err, production.ErrNoAssignedMachine):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
