// Package cmd carries the process-level plumbing shared by the carchat
// subcommands: config resolution, signal-bound context, and logger shutdown.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	coreconfig "github.com/ryuvi/carchat/core/config"
	"github.com/ryuvi/carchat/core/logger"
)

// ConfigPath resolves the configuration file path from the flag value, the
// CONFIG_PATH environment variable, or the default, in that order.
func ConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "config.yaml"
}

// Run loads configuration and executes fn under a context that is cancelled
// on SIGINT/SIGTERM. Logger shutdown is deferred so buffered lines are
// flushed even when fn fails.
func Run(configPath string, fn func(ctx context.Context, cfg *coreconfig.Config) error) error {
	path := ConfigPath(configPath)
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config %s: %w", path, err)
	}

	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return fn(ctx, cfg)
}
