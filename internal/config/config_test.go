package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("embedded YAML and DefaultFlappyConfig disagree:\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
}

func TestDefaultGapTopRange(t *testing.T) {
	lo, hi := DefaultFlappyConfig().GapTopRange()
	// 400 high, 150 gap, 50px margins: gap top in [50, 200)
	if lo != 50 || hi != 200 {
		t.Errorf("GapTopRange() = [%d, %d), expected [50, 200)", lo, hi)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
		valid  bool
	}{
		{"defaults", func(*FlappyConfig) {}, true},
		{"zero height", func(c *FlappyConfig) { c.Viewport.Height = 0 }, false},
		{"zero radius", func(c *FlappyConfig) { c.Player.Radius = 0 }, false},
		{"bird outside viewport", func(c *FlappyConfig) { c.Player.X = 5 }, false},
		{"bird taller than viewport", func(c *FlappyConfig) { c.Player.Radius = 200 }, false},
		{"negative gravity", func(c *FlappyConfig) { c.Physics.Gravity = -1 }, false},
		{"downward impulse", func(c *FlappyConfig) { c.Physics.JumpImpulse = 3 }, false},
		{"zero pipe width", func(c *FlappyConfig) { c.Obstacles.PipeWidth = 0 }, false},
		{"zero frequency", func(c *FlappyConfig) { c.Obstacles.FrequencyMS = 0 }, false},
		{"zero speed", func(c *FlappyConfig) { c.Obstacles.Speed = 0 }, false},
		{"negative margin", func(c *FlappyConfig) { c.Obstacles.TopMargin = -1 }, false},
		{"gap too large", func(c *FlappyConfig) { c.Obstacles.GapSize = 300 }, false},
		{"gap exactly fills", func(c *FlappyConfig) { c.Obstacles.GapSize = 299 }, true},
		{"no margins", func(c *FlappyConfig) { c.Obstacles.TopMargin, c.Obstacles.BottomMargin = 0, 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid {
				if err == nil {
					t.Fatal("Validate() = nil, expected error")
				}
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("error should wrap ErrInvalid, got %v", err)
				}
			}
		})
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.25\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.25 {
		t.Errorf("gravity = %v, expected 0.25", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpImpulse != -10 || cfg.Obstacles.GapSize != 150 {
		t.Errorf("unset fields should keep defaults, got %+v", cfg)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("viewport: [1, 2")); err == nil {
		t.Error("Parse() should fail on malformed YAML")
	}
	_, err := Parse([]byte("obstacles:\n  speed: 0\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Parse() should validate, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Obstacles.FrequencyMS = 900

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "frequency_ms: 900") {
		t.Errorf("Marshal() should use yaml field names, got:\n%s", data)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip changed config: %+v", back)
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  gap_size: 120\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Obstacles.GapSize != 120 {
		t.Errorf("gap_size = %v, expected 120", cfg.Obstacles.GapSize)
	}

	if _, err := LoadFlappy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFlappy() should fail for a missing explicit path")
	}
}

func TestLoadFlappySearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	// Nothing on disk: embedded default
	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	// Local configs directory
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("obstacles:\n  speed: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadFlappy("")
	if cfg.Obstacles.Speed != 3 {
		t.Errorf("local config should be used, speed = %v", cfg.Obstacles.Speed)
	}

	// User config wins over local
	userDir := filepath.Join(home, ".flappy")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, FileName), []byte("obstacles:\n  speed: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadFlappy("")
	if cfg.Obstacles.Speed != 4 {
		t.Errorf("user config should win, speed = %v", cfg.Obstacles.Speed)
	}

}

func TestLoadFlappyReportsInvalidSearchFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool // wraps ErrInvalid
	}{
		{"failed validation", "obstacles:\n  speed: -1\n", true},
		{"malformed yaml", "obstacles: [\n", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)
			t.Chdir(t.TempDir())

			// A valid local config must not hide the broken user config
			if err := os.MkdirAll("configs", 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join("configs", FileName), []byte("obstacles:\n  speed: 3\n"), 0o600); err != nil {
				t.Fatal(err)
			}
			userDir := filepath.Join(home, ".flappy")
			if err := os.MkdirAll(userDir, 0o755); err != nil {
				t.Fatal(err)
			}
			userPath := filepath.Join(userDir, FileName)
			if err := os.WriteFile(userPath, []byte(tc.content), 0o600); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFlappy("")
			if err == nil {
				t.Fatal("LoadFlappy() should fail for an invalid user config")
			}
			if !strings.Contains(err.Error(), userPath) {
				t.Errorf("error should name %s, got %v", userPath, err)
			}
			if got := errors.Is(err, ErrInvalid); got != tc.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, expected %v", got, tc.invalid)
			}
		})
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatalf("Schema() failed: %v", err)
	}
	for _, want := range []string{`"gap_size"`, `"frequency_ms"`, `"jump_impulse"`, "Flappy Bird configuration"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("schema should mention %s", want)
		}
	}
}
