package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PINBALL_SEED", "1234")
	t.Setenv("PINBALL_DIFFICULTY", "0.5")
	t.Setenv("PINBALL_STREAM_ADDR", ":8089")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", cfg.Seed)
	}
	if cfg.Difficulty != 0.5 {
		t.Errorf("Difficulty = %v, want 0.5", cfg.Difficulty)
	}
	if cfg.StreamAddr != ":8089" {
		t.Errorf("StreamAddr = %q", cfg.StreamAddr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PINBALL_MAX_CYCLE_ITERATIONS", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error for zero iteration cap")
	}

	t.Setenv("PINBALL_MAX_CYCLE_ITERATIONS", "8")
	t.Setenv("PINBALL_SEED", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestGravityVector(t *testing.T) {
	cfg := Default()
	cfg.SlopeDeg = 0
	g := cfg.GravityVector()
	if g[1] != 0 || g[2] >= 0 {
		t.Errorf("flat table gravity = %v, want straight down", g)
	}

	cfg.SlopeDeg = 6
	g = cfg.GravityVector()
	if g[1] <= 0 {
		t.Errorf("sloped table must pull toward +Y, got %v", g)
	}
}
