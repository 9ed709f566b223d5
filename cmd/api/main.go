package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"commission-calculator/internal"
	"commission-calculator/pkg/profiling"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	cfg := internal.LoadConfig()
	slog.SetLogLoggerLevel(internal.ParseLogLevel(cfg.LogLevel))
	internal.WarnUnrecognizedEUCodes()

	if cfg.EnableProfiling {
		stopProfiling := profiling.EnableProfiling("prof", time.Minute*2)
		defer stopProfiling()
	}

	client := internal.NewHTTPClient(cfg.LookupTimeout)
	defer client.Close()

	repo, closeRepo, err := internal.OpenRunRepository(ctx, cfg)
	if err != nil {
		panic(err)
	}
	defer closeRepo()

	handler := internal.NewCommissionHandler(internal.NewCalculatorFromConfig(cfg, client), repo)
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,

		CaseSensitive: true,
		StrictRouting: false,
		AppName:       "Commission Calculator",
	})
	handler.RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		slog.Info("shutting down api")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			slog.Error("failed to shutdown the api", "err", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		panic(fmt.Errorf("failed to listen to port: %w", err))
	}
}
