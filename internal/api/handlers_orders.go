package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/internal/catalog"
	"atelier/internal/models"
	"atelier/internal/production"
)

// createOrderRequest is the order form payload. The garment may be given
// either as a full clothing type object or as a catalog ID.
type createOrderRequest struct {
	production.OrderSpec
	ClothingTypeID string `json:"clothing_type_id,omitempty"`
}

// ListOrders returns all orders, optionally filtered by ?status=.
func (s *Server) ListOrders(c *gin.Context) {
	orders := s.engine.Orders()

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, order := range orders {
			if string(order.Status) == status {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GetOrder returns one order by ID.
func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.engine.Order(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder registers a new pending order.
func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ClothingTypeID != "" && req.ClothingType.ID == "" {
		ct, ok := catalog.ClothingTypeByID(req.ClothingTypeID)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown clothing type " + req.ClothingTypeID})
			return
		}
		req.ClothingType = ct
	}

	order, err := s.engine.AddOrder(req.OrderSpec)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// AssignMachine binds a machine to the order.
func (s *Server) AssignMachine(c *gin.Context) {
	var req struct {
		MachineID string `json:"machine_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID := c.Param("id")
	if err := s.engine.AssignMachineToOrder(req.MachineID, orderID); err != nil {
		writeError(c, err)
		return
	}

	order, err := s.engine.Order(orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// StartProduction kicks off the progress simulation for the order.
func (s *Server) StartProduction(c *gin.Context) {
	orderID := c.Param("id")
	if err := s.engine.StartProduction(orderID); err != nil {
		writeError(c, err)
		return
	}

	order, err := s.engine.Order(orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CompatibleMachines lists the available machines able to produce the
// order's garment.
func (s *Server) CompatibleMachines(c *gin.Context) {
	machines, err := s.engine.CompatibleAvailableMachines(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if machines == nil {
		machines = []models.Machine{}
	}
	c.JSON(http.StatusOK, gin.H{"machines": machines, "count": len(machines)})
}

// GetStats returns the aggregate dashboard counters.
func (s *Server) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Stats())
}
