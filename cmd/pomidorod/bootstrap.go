package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"pomidoro/internal/config"
	"pomidoro/internal/daemon"
	"pomidoro/internal/history"
	"pomidoro/internal/ipc"
	"pomidoro/internal/logging"
	"pomidoro/internal/preflight"
)

func run(ctx context.Context, configPath string, serverID int) error {
	if serverID < 0 {
		return fmt.Errorf("instance id must not be negative")
	}

	cfg, resolvedPath, _, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Info("pomidorod starting",
		logging.Int("server_id", serverID),
		logging.String("config", resolvedPath),
	)

	if err := reportPreflight(cfg, resolvedPath, serverID, logger); err != nil {
		return err
	}

	// The daemon keeps running without a journal; history is reporting,
	// not state.
	journal, err := history.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "history journal unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "timer events will not be recorded"),
		)
		journal = nil
	}

	d, err := daemon.New(cfg, serverID, journal, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	if err := d.Start(ctx); err != nil {
		return err
	}
	defer d.Close()

	srv, err := ipc.NewServer(cfg.ServerSocketPath(serverID), d, logger)
	if err != nil {
		return fmt.Errorf("start ipc server: %w", err)
	}
	defer srv.Close()

	pidPath := cfg.PIDPath(serverID)
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer func() { _ = os.Remove(pidPath) }()

	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("pomidorod shutting down", logging.Int("server_id", serverID))
	return nil
}

func reportPreflight(cfg *config.Config, configPath string, serverID int, logger *slog.Logger) error {
	results := preflight.RunAll(cfg, configPath, serverID)
	failed := 0
	for _, result := range results {
		if result.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail),
			)
			continue
		}
		failed++
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldImpact, "daemon will not start"),
		)
	}
	if failed > 0 {
		return fmt.Errorf("%d preflight check(s) failed", failed)
	}
	return nil
}

func writePIDFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644)
}
