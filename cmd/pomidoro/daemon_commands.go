package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pomidoro/internal/daemonctl"
	"pomidoro/internal/preflight"
)

const (
	startWaitTimeout = 10 * time.Second
	stopWaitTimeout  = 5 * time.Second
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the pomidoro daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(
				cmd.Context(),
				ctx.configValue(),
				exe,
				launchOptions(ctx),
				startWaitTimeout,
			)
			if err != nil {
				return err
			}

			switch result.State {
			case daemonctl.StartStateStarted:
				fmt.Fprintln(stdout, "Daemon started")
			case daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon already running")
			}
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the pomidoro daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			result, err := daemonctl.StopAndTerminate(cmd.Context(), ctx.configValue(), ctx.serverID(), stopWaitTimeout)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			if result.Killed && result.PID > 0 {
				fmt.Fprintf(stdout, "Terminated lingering daemon process (pid %d)\n", result.PID)
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	restartCmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the pomidoro daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.Restart(
				cmd.Context(),
				ctx.configValue(),
				exe,
				launchOptions(ctx),
				stopWaitTimeout,
				startWaitTimeout,
			)
			if err != nil {
				return err
			}

			if result.Stop.Killed && result.Stop.PID > 0 {
				fmt.Fprintf(stdout, "Terminated lingering daemon process (pid %d)\n", result.Stop.PID)
			}
			fmt.Fprintln(stdout, "Daemon restarted")
			return nil
		},
	}

	statusCmd := newStatusCommand(ctx)

	return []*cobra.Command{startCmd, stopCmd, restartCmd, statusCmd}
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and timer status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			serverID := ctx.serverID()
			configPath, configExists := ctx.resolvedConfigPath()

			probe := preflight.ProbeDaemon(cfg, serverID)
			checks := preflight.RunAll(cfg, configPath, serverID)

			if jsonFlag {
				return writeJSON(cmd, buildStatusReport(serverID, configPath, probe, checks))
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Instance", statusInfo, strconv.Itoa(serverID), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Socket", statusInfo, probe.SocketPath, colorize))
			configDetail := configPath
			if !configExists {
				configDetail += " (not present, defaults apply)"
			}
			fmt.Fprintln(stdout, renderStatusLine("Config", statusInfo, configDetail, colorize))
			if probe.Running {
				fmt.Fprintln(stdout, renderStatusLine("State", statusOK, probe.Detail(), colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("State", statusWarn, "not running (start it with `pomidoro start`)", colorize))
			}
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, check := range checks {
				kind := statusOK
				if !check.Passed {
					kind = statusError
				}
				fmt.Fprintln(stdout, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}

			if probe.State != nil {
				fmt.Fprintln(stdout)
				for _, line := range renderSectionHeader("Current Session", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, renderSessionTable(cfg, probe.State))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable status")
	return cmd
}

// daemonExecutable locates the pomidorod binary, preferring the one
// installed next to this CLI.
func daemonExecutable() (string, error) {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "pomidorod")
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	path, err := exec.LookPath("pomidorod")
	if err != nil {
		return "", fmt.Errorf("locate pomidorod: %w", err)
	}
	return path, nil
}

func launchOptions(ctx *commandContext) daemonctl.LaunchOptions {
	return daemonctl.LaunchOptions{
		ConfigPath: ctx.configPath(),
		ServerID:   ctx.serverID(),
	}
}
