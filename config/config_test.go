package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("a missing file should not fail: %v", err)
	}
	if cfg.Server.HTTPAddress != ":8080" || cfg.Database.Driver != "sqlite" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Game.Players != 4 || !cfg.Game.Events {
		t.Errorf("Unexpected game defaults: %+v", cfg.Game)
	}
	if cfg.Autoplay.TurnInterval != 500*time.Millisecond {
		t.Errorf("Expected 500ms, got %v", cfg.Autoplay.TurnInterval)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	data := `server:
  http_address: ":9000"
database:
  driver: postgres
game:
  players: 2
  epidemics: 6
  interactive: true
  infection_rates: [2, 2, 3, 3, 4, 4, 4]
autoplay:
  turn_interval: 2s
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OUTBREAK_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.HTTPAddress != ":9000" || cfg.Database.Driver != "postgres" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected env override debug, got %q", cfg.Log.Level)
	}
	if cfg.Autoplay.TurnInterval != 2*time.Second {
		t.Errorf("Expected 2s, got %v", cfg.Autoplay.TurnInterval)
	}

	opts, err := cfg.Game.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Players != 2 || opts.Epidemics != 6 || len(opts.InfectionRates) != 7 || opts.DisableEvents || !opts.Interactive {
		t.Errorf("Unexpected options %+v", opts)
	}
}

func TestGameConfig_OptionsBadBoard(t *testing.T) {
	c := GameConfig{Players: 2, BoardFile: filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := c.Options(); err == nil {
		t.Error("Expected a missing board file to fail")
	}
}
