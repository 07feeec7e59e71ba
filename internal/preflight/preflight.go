package preflight

import (
	"path/filepath"

	"pomidoro/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for one daemon instance. configPath
// is the resolved configuration file location, empty when unknown.
func RunAll(cfg *config.Config, configPath string, serverID int) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckConfigFile("Config file", configPath))
	results = append(results, CheckDirectoryAccess("Socket directory", cfg.Paths.SocketDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.HistoryDBPath())))
	results = append(results, CheckSocketPath("Socket path", cfg.ServerSocketPath(serverID)))

	return results
}

// AllPassed reports whether every check in results passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
