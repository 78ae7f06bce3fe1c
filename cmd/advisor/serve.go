package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/rahmatrdn/go-query-advisor/docs"
	"github.com/rahmatrdn/go-query-advisor/internal/http/handler"
	"github.com/rahmatrdn/go-query-advisor/internal/http/middleware"
	"github.com/rahmatrdn/go-query-advisor/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// writes under these prefixes need a bearer token when ADVISOR_JWT_SECRET is set
var protectedPrefixes = []string{"/analyses", "/suppressions", "/indexes"}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the scheduled query log analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return serve(cmd.Context(), a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	server := fiber.New(fiber.Config{
		AppName:               "query-advisor",
		DisableStartupMessage: true,
	})
	server.Use(recover.New())
	if a.cfg.JWTSecret == "" {
		a.logger.Warn("ADVISOR_JWT_SECRET is empty, write endpoints are unauthenticated")
	}
	for _, prefix := range protectedPrefixes {
		server.Use(prefix, middleware.RequireToken(a.cfg.JWTSecret))
	}

	handler.NewReportHandler(a.advisor, a.reports).Register(server)
	handler.NewSuppressionHandler(a.suppressions).Register(server)
	handler.NewIndexCatalogHandler(a.indexes).Register(server)
	handler.NewInspectHandler().Register(server)
	handler.NewSystemHandler(a.queryLog, a.registry).Register(server)
	server.Get("/swagger/*", swagger.HandlerDefault)

	var sch *scheduler.Scheduler
	if a.cfg.Schedule.Enabled {
		if a.queryLog == nil {
			a.logger.Warn("schedule enabled but the query log source has no address, scheduler not started",
				zap.String("source", a.cfg.QueryLogSource))
		} else {
			s, err := scheduler.New(a.cfg.Schedule.Scheduler(), a.advisor, a.logger)
			if err != nil {
				return err
			}
			sch = s
			sch.Start()
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.cfg.HTTPAddr))
		errCh <- server.Listen(a.cfg.HTTPAddr)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		a.logger.Info("shutting down")
	}

	if sch != nil {
		if err := sch.Shutdown(); err != nil {
			a.logger.Warn("scheduler shutdown", zap.Error(err))
		}
	}
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		a.logger.Warn("http shutdown", zap.Error(err))
	}
	return serveErr
}
