package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	def := DefaultConfig()
	if cfg.AutosaveSeconds != def.AutosaveSeconds {
		t.Errorf("AutosaveSeconds = %d, want %d", cfg.AutosaveSeconds, def.AutosaveSeconds)
	}
	if cfg.DefaultTheme != "light" {
		t.Errorf("DefaultTheme = %q, want light", cfg.DefaultTheme)
	}
	if cfg.WebPort != 8080 || cfg.WebBind != "127.0.0.1" {
		t.Errorf("web = %s:%d, want 127.0.0.1:8080", cfg.WebBind, cfg.WebPort)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"autosave_seconds": 5, "default_theme": "dark", "web_port": 9000}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AutosaveSeconds != 5 {
		t.Errorf("AutosaveSeconds = %d, want 5", cfg.AutosaveSeconds)
	}
	if cfg.DefaultTheme != "dark" {
		t.Errorf("DefaultTheme = %q, want dark", cfg.DefaultTheme)
	}
	if cfg.WebPort != 9000 {
		t.Errorf("WebPort = %d, want 9000", cfg.WebPort)
	}
	// Unset scalars keep defaults
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{not json}`)

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestAutosaveInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.AutosaveInterval(); got != 30*time.Second {
		t.Errorf("AutosaveInterval() = %v, want 30s", got)
	}
}

func TestLoadWithRepo_RepoOverridesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `{"log_level": "debug", "web_port": 9000, "disabled_tools": ["note_delete"]}`)

	project := t.TempDir()
	writeConfig(t, filepath.Join(project, ".jotter"), `{"web_port": 9100, "disabled_tools": ["note_export", "note_delete"]}`)

	nested := filepath.Join(project, "a", "b")
	if err := os.MkdirAll(nested, 0700); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, nested)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.WebPort != 9100 {
		t.Errorf("WebPort = %d, want 9100 (repo wins)", cfg.WebPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug (from global)", cfg.LogLevel)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools = %v, want 2 deduplicated entries", cfg.DisabledTools)
	}
	if cfg.DisabledTools[0] != "note_delete" || cfg.DisabledTools[1] != "note_export" {
		t.Errorf("DisabledTools = %v, want [note_delete note_export]", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_NoConfigs(t *testing.T) {
	cfg, err := LoadWithRepo(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.AutosaveSeconds != 30 {
		t.Errorf("AutosaveSeconds = %d, want 30", cfg.AutosaveSeconds)
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	if got := FindRepoConfig(t.TempDir()); got != "" {
		t.Errorf("FindRepoConfig() = %q, want empty", got)
	}
}

func TestMerge_Arrays(t *testing.T) {
	base := &Config{DisabledTools: []string{" a ", "b"}}
	overlay := &Config{DisabledTools: []string{"b", "", "c"}}

	got := Merge(base, overlay)
	want := []string{"a", "b", "c"}
	if len(got.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", got.DisabledTools, want)
	}
	for i := range want {
		if got.DisabledTools[i] != want[i] {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, got.DisabledTools[i], want[i])
		}
	}
}

func TestMerge_EmptyArraysNil(t *testing.T) {
	got := Merge(&Config{}, &Config{})
	if got.DisabledTools != nil {
		t.Errorf("DisabledTools = %v, want nil", got.DisabledTools)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative autosave", mutate: func(c *Config) { c.AutosaveSeconds = -1 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.WebPort = 70000 }, wantErr: true},
		{name: "negative pool", mutate: func(c *Config) { c.DBMaxIdleConns = -2 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
