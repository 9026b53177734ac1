package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if got.Village.Name != want.Village.Name || got.Planner.MaxActionsPerDay != want.Planner.MaxActionsPerDay {
		t.Fatalf("missing file did not yield defaults: %+v", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "village.yaml")
	body := []byte("village:\n  name: Oakhaven\n  initial_villagers: 15\nmigration:\n  check_interval_days: 14\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Village.Name != "Oakhaven" {
		t.Errorf("name = %q", got.Village.Name)
	}
	if got.Village.InitialVillagers != 15 {
		t.Errorf("initial_villagers = %d", got.Village.InitialVillagers)
	}
	if got.Migration.CheckIntervalDays != 14 {
		t.Errorf("check_interval_days = %d", got.Migration.CheckIntervalDays)
	}
	// Untouched keys keep defaults.
	if got.Migration.CooldownDays != 30 {
		t.Errorf("cooldown_days = %d, want default 30", got.Migration.CooldownDays)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "village.yaml")
	if err := os.WriteFile(path, []byte("village:\n  initial_villagers: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("zero initial_villagers accepted")
	}
}
