package main

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pomidoro/internal/config"
	"pomidoro/internal/preflight"
	"pomidoro/internal/wire"
)

// clockStateText maps the paused flag to the configured display text.
func clockStateText(cfg *config.Config, paused bool) string {
	if cfg == nil {
		if paused {
			return "paused"
		}
		return "running"
	}
	if paused {
		return cfg.Display.PausedText
	}
	return cfg.Display.RunningText
}

// titleCase capitalizes a session name for display headers.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func renderSessionTable(cfg *config.Config, state *wire.PomodoroState) string {
	return renderTable(
		[]string{"Session", "Clock", "Time Left", "Length", "Progress"},
		[][]string{{
			titleCase(state.SessionName),
			clockStateText(cfg, state.Paused),
			state.Time,
			state.SessionDuration,
			fmt.Sprintf("%d%%", state.Percent),
		}},
		4,
	)
}

type statusReport struct {
	Instance int           `json:"instance"`
	Socket   string        `json:"socket"`
	Config   string        `json:"config"`
	Running  bool          `json:"running"`
	State    *stateReport  `json:"state,omitempty"`
	Checks   []checkReport `json:"checks"`
}

type stateReport struct {
	Paused   bool   `json:"paused"`
	Session  string `json:"session"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Percent  uint32 `json:"percent"`
}

type checkReport struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

func buildStatusReport(serverID int, configPath string, probe preflight.DaemonProbe, checks []preflight.Result) statusReport {
	report := statusReport{
		Instance: serverID,
		Socket:   probe.SocketPath,
		Config:   configPath,
		Running:  probe.Running,
		Checks:   make([]checkReport, 0, len(checks)),
	}
	if probe.State != nil {
		report.State = &stateReport{
			Paused:   probe.State.Paused,
			Session:  probe.State.SessionName,
			Time:     probe.State.Time,
			Duration: probe.State.SessionDuration,
			Percent:  probe.State.Percent,
		}
	}
	for _, check := range checks {
		report.Checks = append(report.Checks, checkReport{
			Name:   check.Name,
			Passed: check.Passed,
			Detail: check.Detail,
		})
	}
	return report
}
