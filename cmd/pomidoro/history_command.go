package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pomidoro/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var allInstances bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent timer events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history journal: %w", err)
			}
			defer store.Close()

			serverID := ctx.serverID()
			if allInstances {
				serverID = -1
			}
			events, err := store.Recent(cmd.Context(), serverID, limit)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(stdout, "No events recorded")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					event.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					strconv.Itoa(event.ServerID),
					string(event.Kind),
					clockStateText(cfg, event.Paused),
					event.SessionName,
				})
			}
			fmt.Fprintln(stdout, renderTable([]string{"Time", "ID", "Event", "Clock", "Session"}, rows, 1))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of events to show")
	cmd.Flags().BoolVar(&allInstances, "all", false, "Show events from every daemon instance")
	return cmd
}
