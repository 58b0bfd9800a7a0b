package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
)

const serviceName = "gitlab-mcp"

// HealthHandler handles health check requests
type HealthHandler struct {
	configs   gitlab.ConfigSource
	version   string
	tools     int
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(configs gitlab.ConfigSource, version string, tools int) *HealthHandler {
	return &HealthHandler{
		configs:   configs,
		version:   version,
		tools:     tools,
		startTime: time.Now(),
	}
}

// HandleHealth returns liveness status. It does not contact GitLab.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	uptime := time.Since(h.startTime)

	health := fiber.Map{
		"status":         "healthy",
		"service":        serviceName,
		"version":        h.version,
		"uptime_seconds": int64(uptime.Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"tools":          h.tools,
	}

	if cfg, err := h.configs.Resolve(); err == nil {
		health["access_mode"] = cfg.AccessMode()
		health["auth_mode"] = cfg.AuthMode()
	}

	return c.JSON(health)
}

// HandleReady reports whether configuration resolved, so tool calls can reach GitLab
func (h *HealthHandler) HandleReady(c *fiber.Ctx) error {
	ready := fiber.Map{
		"ready":     true,
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	cfg, err := h.configs.Resolve()
	if err != nil {
		ready["ready"] = false
		ready["reason"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(ready)
	}

	ready["default_project"] = cfg.HasDefaultProject()
	return c.JSON(ready)
}
