// Package main runs the Brave scraper MCP server: a stealth browser
// runtime with Brave Search scraping, content extraction, CAPTCHA
// handling, and pooled sub-agent browser sessions, exposed as a toolset
// over stdio or HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/config"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/server"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/tools"
)

func main() {
	transport := flag.String("transport", "stdio", "Transport to serve on: stdio or http")
	port := flag.Int("port", 0, "HTTP port (overrides PORT env)")
	configPath := flag.String("config", "", "Optional config file path")
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	logger, err := logging.NewLogger("main")
	if err != nil {
		log.Printf("Warning: file logging unavailable: %v", err)
	}
	defer logger.Close()

	if err := run(cfg, *transport, logger); err != nil {
		logger.Errorf("Fatal: %v", err)
		log.Fatalf("Error: %v", err)
	}
}

func run(cfg *config.Config, transport string, logger *logging.Logger) error {
	manager := browser.NewManager(cfg)
	if err := manager.Start(); err != nil {
		return err
	}
	defer func() {
		if err := manager.Stop(); err != nil {
			logger.Warnf("Error stopping browser manager: %v", err)
		}
	}()

	registry := tools.DefaultRegistry(manager, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Infof("Shutdown signal received, stopping...")
		cancel()
	}()

	switch transport {
	case "stdio":
		return server.NewStdio(registry, logger).Run(ctx, os.Stdin, os.Stdout)
	case "http":
		srv := server.New(registry, cfg.Port, logger)
		errChan := make(chan error, 1)
		go func() { errChan <- srv.ListenAndServe() }()

		select {
		case err := <-errChan:
			return err
		case <-ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		}
	default:
		return fmt.Errorf("unknown transport: %s (must be 'stdio' or 'http')", transport)
	}
}
