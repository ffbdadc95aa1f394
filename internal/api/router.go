package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireboard/internal/usecase/talent"
)

// NewRouter builds the read-only JSON API over the latest snapshot.
func NewRouter(svc *talent.Service) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	h := &Handler{Service: svc}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/snapshots", h.ListSnapshots)
		v1.GET("/snapshots/diff", h.DiffSnapshots)
		v1.GET("/overview", h.Overview)
		v1.GET("/premortem", h.PreMortem)
		v1.GET("/sla", h.SLA)
		v1.GET("/arbitrate", h.Arbitrate)
		v1.GET("/sources", h.Sources)
		v1.GET("/velocity", h.Velocity)
		v1.GET("/capacity", h.Capacity)
		v1.GET("/forecast/:req", h.Forecast)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}
