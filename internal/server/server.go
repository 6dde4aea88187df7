package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/redhat-appstudio/workshop-console/apis/common"
	"github.com/redhat-appstudio/workshop-console/apis/console"
	"github.com/redhat-appstudio/workshop-console/internal/config"
	"github.com/redhat-appstudio/workshop-console/internal/handlers"
	"github.com/redhat-appstudio/workshop-console/internal/version"
	"github.com/redhat-appstudio/workshop-console/pkg/clock"
	"github.com/redhat-appstudio/workshop-console/pkg/display"
	"github.com/redhat-appstudio/workshop-console/pkg/fetch"
	"github.com/redhat-appstudio/workshop-console/pkg/logger"
	"github.com/redhat-appstudio/workshop-console/pkg/monitors/health"
	"github.com/redhat-appstudio/workshop-console/pkg/scheduler"
	"github.com/redhat-appstudio/workshop-console/pkg/storage"
	"github.com/redhat-appstudio/workshop-console/pkg/tester"
)

// Server is the console process: the display board, the three behaviors
// that write to it or log from it, and the HTTP control surface.
type Server struct {
	// app is the Fiber HTTP application instance
	app *fiber.App

	// cfg contains the console configuration
	cfg *config.Config

	// board holds the display regions
	board *display.Board

	// scheduler owns the clock and health monitor tasks
	scheduler *scheduler.Scheduler

	// mirror is the optional Redis copy of the board
	mirror *storage.RedisClient
}

// New creates a Server from the resolved configuration. The logger must
// already be initialized.
func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("configuration is nil")
	}

	board := display.NewBoard(display.RegionAPIResponse, display.RegionServerTime)

	var mirror *storage.RedisClient
	if cfg.Storage.Redis.Enabled {
		var err error
		mirror, err = storage.NewRedisClient(storage.RedisConfig{
			Enabled:   cfg.Storage.Redis.Enabled,
			Address:   cfg.Storage.Redis.Address,
			Password:  cfg.Storage.Redis.Password,
			Database:  cfg.Storage.Redis.Database,
			KeyPrefix: cfg.Storage.Redis.KeyPrefix,
			TTL:       cfg.Storage.Redis.RedisTTL(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis display mirror: %w", err)
		}
		board.AddSink(mirror)
		logger.Infof("Redis display mirror enabled - Address: %s, prefix: %s", cfg.Storage.Redis.Address, cfg.Storage.Redis.KeyPrefix)
	}

	client := NewFetchClient(cfg)
	endpointTester := NewTester(cfg, client, board)

	sched := scheduler.New()
	if cfg.Clock.Enabled {
		if err := sched.Add(clock.New(board, display.RegionServerTime).Task(cfg.Clock.Interval)); err != nil {
			return nil, err
		}
		logger.Infof("Live clock: enabled (interval: %s)", cfg.Clock.Interval)
	} else {
		logger.Infof("Live clock: disabled")
	}

	if cfg.Health.Enabled {
		monitor := health.NewMonitor(client, cfg.Health.Path, cfg.Health.Interval)
		if err := sched.Add(monitor.Task()); err != nil {
			return nil, err
		}
		logger.Infof("Health monitoring: enabled (%s%s every %s)", cfg.Target.BaseURL, cfg.Health.Path, monitor.Interval())
	} else {
		logger.Infof("Health monitoring: disabled")
	}

	var limiter *rate.Limiter
	if cfg.Tester.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Tester.RequestsPerSec), cfg.Tester.Burst)
	}
	consoleHandler, err := console.NewHandler(board, endpointTester, cfg.Tester.Presets, limiter)
	if err != nil {
		return nil, err
	}

	// Create Fiber app with faster JSON encoder
	app := fiber.New(fiber.Config{
		AppName:               "Cloud Workshop console " + version.GetVersion(),
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(common.ErrorResponse{
				Error:   true,
				Message: err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	handlers.SetupRoutes(app, cfg.Target.BaseURL, consoleHandler)

	logger.Info("Console ready",
		zap.Strings("regions", board.IDs()),
		zap.Strings("tasks", sched.IDs()),
		zap.Strings("presets", cfg.Tester.Presets),
		zap.Bool("discard_stale", cfg.Tester.DiscardStale))

	return &Server{
		app:       app,
		cfg:       cfg,
		board:     board,
		scheduler: sched,
		mirror:    mirror,
	}, nil
}

// NewFetchClient builds the HTTP client for the watched application.
func NewFetchClient(cfg *config.Config) *fetch.Client {
	return fetch.NewClient(fetch.Config{
		BaseURL: cfg.Target.BaseURL,
		Token:   cfg.Target.Token,
		Timeout: cfg.Target.Timeout,
	})
}

// NewTester builds the endpoint tester writing to page.
func NewTester(cfg *config.Config, client *fetch.Client, page display.Page) *tester.Tester {
	return tester.New(client, page, tester.Options{
		RegionID:     display.RegionAPIResponse,
		DiscardStale: cfg.Tester.DiscardStale,
	})
}

// Board exposes the display so callers can attach extra sinks.
func (s *Server) Board() *display.Board {
	return s.board
}

// Start starts the scheduled tasks and then serves HTTP until Shutdown.
func (s *Server) Start() error {
	logger.Infof("Starting scheduled tasks: %v", s.scheduler.IDs())
	s.scheduler.Start()

	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown stops the scheduled tasks, the HTTP server and the Redis mirror.
func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop()

	err := s.app.ShutdownWithContext(ctx)

	if s.mirror != nil {
		if cerr := s.mirror.Close(); cerr != nil {
			logger.Warnf("Failed to close Redis display mirror: %v", cerr)
		}
	}

	return err
}
