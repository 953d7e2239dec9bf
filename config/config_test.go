package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "./data/catering.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DailyLimit != 3 {
		t.Errorf("DailyLimit = %d, want 3", cfg.DailyLimit)
	}
	if cfg.SeedDemo {
		t.Error("SeedDemo should default to false")
	}
}

func TestParseCLIFlags(t *testing.T) {
	args := []string{
		"--port", "9000",
		"--db", ":memory:",
		"--log-level", "debug",
		"--verbose",
		"--daily-limit", "5",
		"--seed-demo",
	}
	cfg, err := Parse(args)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
	if cfg.DailyLimit != 5 {
		t.Errorf("DailyLimit = %d", cfg.DailyLimit)
	}
	if !cfg.SeedDemo {
		t.Error("SeedDemo should be true")
	}
}

func TestParseEnvVarFallback(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("DB_PATH", "/env/catering.db")
	t.Setenv("DAILY_EVENT_LIMIT", "4")

	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 7777 {
		t.Errorf("Port = %d, want env override", cfg.Port)
	}
	if cfg.DBPath != "/env/catering.db" {
		t.Errorf("DBPath = %q, want env override", cfg.DBPath)
	}
	if cfg.DailyLimit != 4 {
		t.Errorf("DailyLimit = %d, want env override", cfg.DailyLimit)
	}
}

func TestParseCLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "7777")

	cfg, err := Parse([]string{"--port", "9001"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9001 {
		t.Errorf("Port = %d, want CLI override", cfg.Port)
	}
}

func TestParseInvalidEnvPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	if _, err := Parse(nil); err == nil {
		t.Error("expected error for non-numeric PORT")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Port: 8080, DBPath: ":memory:", LogLevel: "info", DailyLimit: 3}, false},
		{"port zero", Config{Port: 0, DBPath: ":memory:", LogLevel: "info", DailyLimit: 3}, true},
		{"port too big", Config{Port: 70000, DBPath: ":memory:", LogLevel: "info", DailyLimit: 3}, true},
		{"empty db", Config{Port: 8080, DBPath: "", LogLevel: "info", DailyLimit: 3}, true},
		{"limit zero", Config{Port: 8080, DBPath: ":memory:", LogLevel: "info", DailyLimit: 0}, true},
		{"bad level", Config{Port: 8080, DBPath: ":memory:", LogLevel: "loud", DailyLimit: 3}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
