package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/internal/production"
)

// ListMachines returns the whole machine park.
func (s *Server) ListMachines(c *gin.Context) {
	machines := s.engine.Machines()
	c.JSON(http.StatusOK, gin.H{"machines": machines, "count": len(machines)})
}

// GetMachine returns one machine by ID.
func (s *Server) GetMachine(c *gin.Context) {
	machine, err := s.engine.Machine(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, machine)
}

// CreateMachine registers a new machine. It enters the park available.
func (s *Server) CreateMachine(c *gin.Context) {
	var spec production.MachineSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	machine, err := s.engine.AddMachine(spec)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, machine)
}

// UpdateMachine replaces the editable fields of a machine. Its status and
// current order are untouched.
func (s *Server) UpdateMachine(c *gin.Context) {
	var spec production.MachineSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	machine, err := s.engine.UpdateMachine(c.Param("id"), spec)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, machine)
}

// DeleteMachine removes a machine unless it is occupied.
func (s *Server) DeleteMachine(c *gin.Context) {
	if err := s.engine.DeleteMachine(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "machine deleted"})
}
