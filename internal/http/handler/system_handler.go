package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
)

// SystemHandler serves liveness and the Prometheus exposition.
type SystemHandler struct {
	queryLog querylog.Reader
	gatherer prometheus.Gatherer
}

// NewSystemHandler accepts a nil queryLog when no query log source is configured.
func NewSystemHandler(queryLog querylog.Reader, gatherer prometheus.Gatherer) *SystemHandler {
	return &SystemHandler{queryLog: queryLog, gatherer: gatherer}
}

func (h *SystemHandler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

// Health godoc
// @Summary  Report liveness and query log reachability
// @Tags     system
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  503  {object}  map[string]string
// @Router   /healthz [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	if h.queryLog == nil {
		return c.JSON(fiber.Map{"status": "ok"})
	}

	version, err := h.queryLog.ServerVersion(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"source": h.queryLog.Source(),
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"source":  h.queryLog.Source(),
		"version": version,
	})
}
