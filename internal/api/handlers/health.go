package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/fretlab-api/internal/shapes"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"engine": gin.H{
			"qualities": len(theory.Qualities()),
			"templates": len(shapes.Templates()),
			"scales":    len(theory.Scales()),
		},
	})
}
