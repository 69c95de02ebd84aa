package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier/internal/models"
	"atelier/internal/production"
)

// Operators

func (s *Server) ListOperators(c *gin.Context) {
	operators := s.refs.Operators.List()
	c.JSON(http.StatusOK, gin.H{"operators": operators, "count": len(operators)})
}

func (s *Server) CreateOperator(c *gin.Context) {
	var operator models.Operator
	if err := c.ShouldBindJSON(&operator); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if operator.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operator name is required"})
		return
	}
	if operator.ID == "" {
		operator.ID = "operator-" + uuid.NewString()
	}

	if err := s.refs.Operators.Add(operator); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, operator)
}

func (s *Server) UpdateOperator(c *gin.Context) {
	var operator models.Operator
	if err := c.ShouldBindJSON(&operator); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	operator.ID = c.Param("id")
	if operator.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operator name is required"})
		return
	}

	if err := s.refs.Operators.Update(operator); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, operator)
}

// Description tags

func (s *Server) ListTags(c *gin.Context) {
	tags := s.refs.Tags.List()
	c.JSON(http.StatusOK, gin.H{"tags": tags, "count": len(tags)})
}

func (s *Server) CreateTag(c *gin.Context) {
	var tag models.DescriptionTag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := production.ValidateTag(tag); err != nil {
		writeError(c, err)
		return
	}
	if tag.ID == "" {
		tag.ID = "tag-" + uuid.NewString()
	}

	if err := s.refs.Tags.Add(tag); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (s *Server) UpdateTag(c *gin.Context) {
	var tag models.DescriptionTag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag.ID = c.Param("id")
	if err := production.ValidateTag(tag); err != nil {
		writeError(c, err)
		return
	}

	if err := s.refs.Tags.Update(tag); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (s *Server) DeleteTag(c *gin.Context) {
	if err := s.refs.Tags.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}

// Production time categories

func (s *Server) ListProductionTimes(c *gin.Context) {
	categories := s.refs.ProductionTimes.List()
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

func (s *Server) CreateProductionTime(c *gin.Context) {
	var category models.ProductionTimeCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if category.Name == "" || category.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and value are required"})
		return
	}
	if category.Type == "" {
		category.Type = models.TimeValueFixed
	}
	if category.ID == "" {
		category.ID = "prod-time-" + uuid.NewString()
	}

	if err := s.refs.ProductionTimes.Add(category); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) UpdateProductionTime(c *gin.Context) {
	var category models.ProductionTimeCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category.ID = c.Param("id")
	if category.Name == "" || category.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and value are required"})
		return
	}

	if err := s.refs.ProductionTimes.Update(category); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) DeleteProductionTime(c *gin.Context) {
	if err := s.refs.ProductionTimes.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "production time category deleted"})
}

// Error time categories

func (s *Server) ListErrorTimes(c *gin.Context) {
	categories := s.refs.ErrorTimes.List()
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

func (s *Server) CreateErrorTime(c *gin.Context) {
	var category models.ErrorTimeCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if category.Name == "" || category.Unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and unit are required"})
		return
	}
	if category.Value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value cannot be negative"})
		return
	}
	if category.ID == "" {
		category.ID = "error-time-" + uuid.NewString()
	}

	if err := s.refs.ErrorTimes.Add(category); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) UpdateErrorTime(c *gin.Context) {
	var category models.ErrorTimeCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category.ID = c.Param("id")
	if category.Name == "" || category.Unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and unit are required"})
		return
	}

	if err := s.refs.ErrorTimes.Update(category); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) DeleteErrorTime(c *gin.Context) {
	if err := s.refs.ErrorTimes.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "error time category deleted"})
}
