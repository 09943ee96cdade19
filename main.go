package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/logger"
	"github.com/rocketscienceinc/tictactoe-engine/internal/telemetry"
)

// main - is the entry point of the application. It initializes the configuration, telemetry, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()

	shutdown, err := telemetry.InitOtel(context.Background(), conf.Telemetry)
	if err != nil {
		panic(fmt.Errorf("telemetry init failed: %w", err))
	}

	log := initLogger(conf)

	defer func() {
		if err = shutdown(context.Background()); err != nil {
			log.Error("telemetry shutdown failed", "error", err)
		}
	}()

	if err = app.RunApp(log, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	return logger.New(os.Stdout, conf.LogLevel, telemetry.Enabled(conf.Telemetry))
}
