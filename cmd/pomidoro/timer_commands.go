package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomidoro/internal/daemonctl"
)

func newTimerCommands(ctx *commandContext) []*cobra.Command {
	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Pause or resume the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().Toggle(); err != nil {
				return daemonctl.GuideUnavailable(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Timer toggled")
			return nil
		},
	}

	skipCmd := &cobra.Command{
		Use:   "skip",
		Short: "Skip to the start of the next session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().Skip(); err != nil {
				return daemonctl.GuideUnavailable(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Skipped to the next session")
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the timer to the top of the cycle, paused",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().Reset(); err != nil {
				return daemonctl.GuideUnavailable(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Timer reset")
			return nil
		},
	}

	return []*cobra.Command{toggleCmd, skipCmd, resetCmd}
}
