package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/app"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/config"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/handler"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/logging"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/server"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/tools"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional
	envErr := godotenv.Load()

	resolver := config.NewResolver(nil)
	cfg, cfgErr := resolver.Resolve()

	level := os.Getenv("LOG_LEVEL")
	if cfgErr == nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	logging.InitLogger(level, "GITLAB-MCP")
	log := logging.GetLogger()
	defer log.Sync()

	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn("Failed to load .env file", zap.Error(envErr))
	}

	s, cfg := newServer(resolver, log)

	if cfg.Server.HTTPAddr == "" {
		if err := mcpserver.ServeStdio(s); err != nil {
			log.Error("stdio server stopped", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	health := handler.NewHealthHandler(resolver, server.Version, len(s.ListTools()))
	httpApp := handler.NewHTTPApp(s, health)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpApp.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("HTTP shutdown failed", zap.Error(err))
		}
	}()

	log.Info("GitLab MCP starting",
		zap.String("addr", cfg.Server.HTTPAddr),
		zap.String("endpoint", handler.MCPPath),
	)
	if err := httpApp.Listen(cfg.Server.HTTPAddr); err != nil {
		log.Error("HTTP server stopped", zap.Error(err))
		os.Exit(1)
	}
}

// newServer builds the MCP server. An invalid configuration does not stop
// startup: the full catalog is listed and every call reports the
// configuration error.
func newServer(resolver *config.Resolver, log *logging.Logger) (*mcpserver.MCPServer, *config.Config) {
	cfg, err := resolver.Resolve()
	if err != nil {
		log.Error("Configuration is invalid, tool calls will fail until it is fixed", zap.Error(err))
		cfg = &config.Config{}
	}

	a := app.New(resolver, app.WithLogger(log))
	return server.New(a, tools.NewRegistry(), cfg), cfg
}
