package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"pomidoro/internal/daemonctl"
)

const defaultFetchTemplate = "{{.ClockState}} {{.Session}} {{.Time}} ({{.Percent}}%)"

// fetchTemplateData is the value rendered by the fetch template. Field
// names are the template's public contract.
type fetchTemplateData struct {
	// ID is the daemon instance id the state came from.
	ID int
	// ClockState is the configured paused or running display text.
	ClockState string
	// Session is the current session name.
	Session string
	// Duration is the formatted total session length.
	Duration string
	// Percent is how far into the session the clock is, 0 to 100.
	Percent int
	// Time is the formatted time left in the session.
	Time string
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var templateFlag string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Print the current timer state",
		Long: `Print the current timer state rendered through a Go text/template.

The template sees ID, ClockState, Session, Duration, Percent, and Time.
Status-bar integrations usually pass their own --template.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := template.New("fetch").Parse(templateFlag)
			if err != nil {
				return fmt.Errorf("parse template: %w", err)
			}

			state, err := ctx.client().Fetch()
			if err != nil {
				return daemonctl.GuideUnavailable(err)
			}

			data := fetchTemplateData{
				ID:         ctx.serverID(),
				ClockState: clockStateText(ctx.configValue(), state.Paused),
				Session:    state.SessionName,
				Duration:   state.SessionDuration,
				Percent:    int(state.Percent),
				Time:       state.Time,
			}

			var out strings.Builder
			if err := tmpl.Execute(&out, data); err != nil {
				return fmt.Errorf("render template: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateFlag, "template", "t", defaultFetchTemplate, "Go template rendered with the fetched state")
	return cmd
}
