package main

import (
	"path/filepath"
	"strings"
	"testing"

	"pomidoro/internal/config"
)

func TestConfigInitWritesLoadableSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "pomidoro", "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to")

	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file was not written")
	}
	if len(cfg.Sessions) != 2 || cfg.Sessions[0].DurationSeconds != 25*60 {
		t.Fatalf("unexpected sample sessions: %+v", cfg.Sessions)
	}
}

func TestConfigInitRefusesExistingFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err != nil {
		t.Fatalf("first init: %v", err)
	}

	_, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("err = %v, want refusal without --force", err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestConfigValidateReportsSessions(t *testing.T) {
	env := setupCLIConfig(t)

	out, _, err := runCLI(t, env.configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "work")
	requireContains(t, out, "25m0s")
	requireContains(t, out, "rest")
	requireContains(t, out, "5m0s")
}

func TestConfigValidateRejectsBrokenFile(t *testing.T) {
	env := setupCLIConfig(t)

	broken := filepath.Join(filepath.Dir(env.configPath), "broken.toml")
	writeFile(t, broken, "[[sessions]]\nname = \"work\"\nduration_seconds = 0\n")

	_, _, err := runCLI(t, broken, "config", "validate")
	if err == nil || !strings.Contains(err.Error(), "duration_seconds") {
		t.Fatalf("err = %v, want validation failure", err)
	}
}

func TestConfigShowPrintsEffectiveTOML(t *testing.T) {
	env := setupCLIConfig(t)

	out, _, err := runCLI(t, env.configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[display]")
	requireContains(t, out, "paused_text")
	requireContains(t, out, "[[sessions]]")
	requireContains(t, out, "work")
	requireContains(t, out, "duration_seconds = 1500")
}
