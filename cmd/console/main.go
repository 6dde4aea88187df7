package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/redhat-appstudio/workshop-console/internal/config"
	"github.com/redhat-appstudio/workshop-console/internal/server"
	"github.com/redhat-appstudio/workshop-console/pkg/auth"
	"github.com/redhat-appstudio/workshop-console/pkg/display"
	"github.com/redhat-appstudio/workshop-console/pkg/logger"
)

// shutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// main is the entry point for the workshop console.
//  1. Loads environment variables from .env if present
//  2. Parses command-line flags
//  3. Loads configuration from YAML, environment and flags
//  4. Either runs a single endpoint test (-fetch) or starts the console:
//     live clock, health monitor and the HTTP control surface
//  5. Shuts down gracefully on SIGINT/SIGTERM
func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		(&ConsoleFlags{}).showHelp(os.Stderr)
		os.Exit(2)
	}
	if flags.Help {
		flags.showHelp(os.Stdout)
		return
	}
	if flags.Version {
		flags.showVersion(os.Stdout)
		return
	}
	if err := flags.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg := config.LoadWithFlags(flags)

	if err := logger.InitFromConfig(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Infof("Cloud Workshop console loaded")
	logger.Infof("Target: %s", cfg.Target.BaseURL)
	logger.Infof("Environment: %s", cfg.Environment)
	logger.Infof("Log level: %s", cfg.LogLevel)
	if cfg.Target.Token != "" {
		if claims, err := auth.ParseClaims(cfg.Target.Token); err == nil {
			logger.Infof("Target token: %s (expires: %s)", claims.Identity(), claims.ExpiresAt)
		} else {
			logger.Infof("Target token: opaque bearer token")
		}
	}

	color := isatty.IsTerminal(os.Stdout.Fd())

	if flags.Fetch != "" {
		code := runFetch(cfg, flags.Fetch, color)
		logger.Sync()
		os.Exit(code)
	}

	srv, err := server.New(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize console: %v", err)
	}
	srv.Board().AddSink(display.NewTerminalSink(os.Stdout, color, display.RegionAPIResponse))

	go func() {
		logger.Infof("Control surface listening on port %s", cfg.Port)
		if err := srv.Start(); err != nil {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Infof("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	logger.Infof("Cloud Workshop console stopped")
}

// runFetch performs one endpoint test, echoing the display to stdout.
// It returns the process exit code: 1 when the result is an error message.
func runFetch(cfg *config.Config, path string, color bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board := display.NewBoard(display.RegionAPIResponse)
	board.AddSink(display.NewTerminalSink(os.Stdout, color, display.RegionAPIResponse))

	endpointTester := server.NewTester(cfg, server.NewFetchClient(cfg), board)
	outcome, err := endpointTester.Fetch(ctx, path)
	if err != nil {
		logger.Errorf("Endpoint test failed: %v", err)
		return 1
	}
	if outcome.Failed() {
		return 1
	}
	return 0
}
