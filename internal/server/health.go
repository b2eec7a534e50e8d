package server

import (
	"context"
	"net/http"
	"time"

	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// healthHandler handles GET /healthz
func healthHandler(db Pinger, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable, err, "database unreachable")
			utils.Error("healthHandler: database ping failed", map[string]any{"error": err.Error()})
			return
		}
		data := metrics.Snapshot()
		data["database"] = "ok"
		utils.JSONResponse(c, http.StatusOK, data, "ok")
	}
}
