package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hireboard/internal/ports"
	"hireboard/internal/usecase/talent"
)

type Handler struct {
	Service *talent.Service
}

func (h *Handler) statusFor(err error) int {
	switch {
	case errors.Is(err, talent.ErrNoSnapshots),
		errors.Is(err, talent.ErrRequisitionNotFound),
		errors.Is(err, ports.ErrSnapshotNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) ListSnapshots(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	items, err := h.Service.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) DiffSnapshots(c *gin.Context) {
	fromID := c.Query("from")
	toID := c.Query("to")
	if fromID == "" || toID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to snapshot ids are required"})
		return
	}

	events, err := h.Service.DiffSnapshots(c.Request.Context(), fromID, toID)
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.Service.Overview(c.Request.Context())
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *Handler) PreMortem(c *gin.Context) {
	assessments, err := h.Service.PreMortem(c.Request.Context())
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assessments)
}

func (h *Handler) SLA(c *gin.Context) {
	attributions, err := h.Service.SLAReport(c.Request.Context())
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, attributions)
}

func (h *Handler) Arbitrate(c *gin.Context) {
	entries, err := h.Service.Arbitrate(c.Request.Context())
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) Sources(c *gin.Context) {
	reports, err := h.Service.SourceReport(c.Request.Context())
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handler) Velocity(c *gin.Context) {
	report, err := h.Service.VelocityReport(c.Request.Context())
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Capacity(c *gin.Context) {
	report, err := h.Service.CapacityReport(c.Request.Context())
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Forecast(c *gin.Context) {
	input := talent.ForecastInput{ReqKey: c.Param("req")}

	if raw := c.Query("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an integer"})
			return
		}
		input.Seed = seed
	}
	if raw := c.Query("trials"); raw != "" {
		trials, err := strconv.Atoi(raw)
		if err != nil || trials < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "trials must be a positive integer"})
			return
		}
		input.Trials = trials
	}
	if raw := c.Query("arrivals_per_week"); raw != "" {
		arrivals, err := strconv.ParseFloat(raw, 64)
		if err != nil || arrivals < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "arrivals_per_week must be a non-negative number"})
			return
		}
		input.ArrivalsPerWeek = arrivals
	}
	input.SkipCache = c.Query("no_cache") == "true"

	output, err := h.Service.Forecast(c.Request.Context(), input)
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Forecast-Cache", strconv.FormatBool(output.FromCache))
	c.JSON(http.StatusOK, output)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
