package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	mcpserver "github.com/mark3labs/mcp-go/server"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
)

// MCPPath is where the streamable HTTP transport is mounted
const MCPPath = "/mcp"

// NewHTTPApp serves the MCP server over streamable HTTP next to the health endpoints
func NewHTTPApp(s *mcpserver.MCPServer, health *HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "GitLab MCP",
		ErrorHandler:          apperrors.NewHandler().FiberErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	// stdout may carry the stdio transport, keep request logs off it
	app.Use(logger.New(logger.Config{Output: os.Stderr}))
	app.Use(cors.New())

	app.Get("/health", health.HandleHealth)
	app.Get("/ready", health.HandleReady)

	streamable := mcpserver.NewStreamableHTTPServer(s,
		mcpserver.WithEndpointPath(MCPPath),
		mcpserver.WithStateLess(true),
	)
	app.All(MCPPath, adaptor.HTTPHandler(streamable))

	return app
}
