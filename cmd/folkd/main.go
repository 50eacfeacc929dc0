package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/folkways/internal/config"
	"github.com/danmuck/folkways/internal/inspect"
	"github.com/danmuck/folkways/internal/logging"
	"github.com/danmuck/folkways/internal/observability"
	"github.com/gin-gonic/gin"
)

const defaultConfigPath = "cmd/folkd/config.toml"

func main() {
	path := flag.String("config", defaultConfigPath, "path to folkd config")
	addr := flag.String("addr", "", "listen address override")
	flag.Parse()

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folkd: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logging.ConfigureRuntime(logging.WithLevel(cfg.LogLevel), logging.WithFile(cfg.LogFile))
	gin.SetMode(gin.ReleaseMode)
	logger := observability.ServiceLogger(cfg.ID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := inspect.New(cfg, logger).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("folkd stopped")
		os.Exit(1)
	}
}

// loadConfig falls back to defaults when path does not exist.
func loadConfig(path string) (config.FolkdConfig, error) {
	cfg, err := config.LoadFolkdConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.DefaultFolkdConfig(), nil
	}
	return cfg, err
}
