// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finsight/backend/internal/infra/db"
)

// HealthController handles health check endpoints.
type HealthController struct {
	database *db.Database // nil when no store could be opened
}

// NewHealthController creates a new health controller instance.
func NewHealthController(database *db.Database) *HealthController {
	return &HealthController{
		database: database,
	}
}

// Health handles GET /health requests. The store field reports which
// backend currently serves reads and writes.
func (c *HealthController) Health(ctx *gin.Context) {
	store := db.ModeDown
	status := "degraded"

	if c.database != nil {
		store = c.database.Mode()
		if c.database.HealthCheck() {
			if store == db.ModePostgres {
				status = "ok"
			}
		} else {
			store = db.ModeDown
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": status,
		"store":  string(store),
		"time":   time.Now().UTC(),
	})
}
