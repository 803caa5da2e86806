package options

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewOptionsDefaults(t *testing.T) {
	t.Setenv("MOMENTUM_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("FOOTBALL_DATA_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	o, err := NewOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.PollIntervalSeconds != 60 {
		t.Errorf("poll interval = %d, want 60", o.PollIntervalSeconds)
	}
	if o.SnapshotCap != 2000 {
		t.Errorf("snapshot cap = %d, want 2000", o.SnapshotCap)
	}
	if len(o.Competitions) != 6 {
		t.Errorf("competitions = %v, want the 6 defaults", o.Competitions)
	}
	if !o.DemoMode() {
		t.Error("missing token should mean demo mode")
	}
}

func TestNewOptionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := []byte("apiToken: abc123\npollIntervalSeconds: 30\ncompetitions: [2021]\nport: \"9090\"\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MOMENTUM_CONFIG", path)
	t.Setenv("FOOTBALL_DATA_API_KEY", "")
	t.Setenv("PORT", "")

	o, err := NewOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.APIToken != "abc123" {
		t.Errorf("token = %q, want abc123", o.APIToken)
	}
	if o.PollIntervalSeconds != 30 {
		t.Errorf("poll interval = %d, want 30", o.PollIntervalSeconds)
	}
	if len(o.Competitions) != 1 || o.Competitions[0] != 2021 {
		t.Errorf("competitions = %v, want [2021]", o.Competitions)
	}
	if o.Port != "9090" {
		t.Errorf("port = %q, want 9090", o.Port)
	}
	if o.DemoMode() {
		t.Error("a real token should disable demo mode")
	}
	// Unset values keep their defaults.
	if o.SnapshotCap != 2000 {
		t.Errorf("snapshot cap = %d, want default 2000", o.SnapshotCap)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("apiToken: from_file\nport: \"9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MOMENTUM_CONFIG", path)
	t.Setenv("FOOTBALL_DATA_API_KEY", "from_env")
	t.Setenv("PORT", "7070")

	o, err := NewOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.APIToken != "from_env" {
		t.Errorf("token = %q, env should win", o.APIToken)
	}
	if o.Port != "7070" {
		t.Errorf("port = %q, env should win", o.Port)
	}
}

func TestDemoModePlaceholderToken(t *testing.T) {
	o := &Options{APIToken: "your_api_key_here"}
	if !o.DemoMode() {
		t.Error("the config template placeholder should count as no token")
	}
}
