package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/otdash/internal/config"
)

func TestConfigService_GetAndPath(t *testing.T) {
	cfg := config.DefaultConfig()
	svc := NewConfigService("/tmp/test/config.toml", cfg)

	if got := svc.Get(); got.APIBaseURL != cfg.APIBaseURL {
		t.Errorf("expected APIBaseURL %q, got %q", cfg.APIBaseURL, got.APIBaseURL)
	}
	if path := svc.GetPath(); path != "/tmp/test/config.toml" {
		t.Errorf("expected path '/tmp/test/config.toml', got %q", path)
	}
}

func TestConfigService_Exists(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if svc.Exists() {
		t.Error("expected Exists() to return false")
	}
	if err := os.WriteFile(configPath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if !svc.Exists() {
		t.Error("expected Exists() to return true")
	}
}

func TestConfigService_UpdateRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	newCfg := config.DefaultConfig()
	newCfg.APIBaseURL = "https://hr.example.com/api/"
	newCfg.LogLevel = "DEBUG"
	newCfg.Shifts.WeekdayOTStart = map[string]float64{"7:30am": 16.5}

	if err := svc.Update(newCfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := svc.Get()
	if result.APIBaseURL != "https://hr.example.com/api" {
		t.Errorf("expected normalized APIBaseURL, got %q", result.APIBaseURL)
	}
	if result.LogLevel != "debug" {
		t.Errorf("expected LogLevel 'debug', got %q", result.LogLevel)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.APIBaseURL != result.APIBaseURL {
		t.Errorf("loaded APIBaseURL = %q", loaded.APIBaseURL)
	}
	if loaded.Shifts.WeekdayOTStart["7:30am"] != 16.5 {
		t.Errorf("loaded shift override = %v", loaded.Shifts.WeekdayOTStart)
	}
}

func TestConfigService_Update_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	invalid := config.DefaultConfig()
	invalid.APIBaseURL = "ftp://hr.example.com"

	if err := svc.Update(invalid); err == nil {
		t.Error("expected error for invalid config")
	}
	if svc.Exists() {
		t.Error("invalid config should not be written")
	}
}

func TestConfigService_Init(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if err := svc.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "api_base_url") {
		t.Error("expected sample config to mention api_base_url")
	}

	if err := svc.Init(); err == nil {
		t.Error("expected error when config file already exists")
	}
}

func TestConfigService_SetTheme(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := config.DefaultConfig()
	cfg.PollInterval = "5s"
	svc := NewConfigService(configPath, cfg)

	if err := svc.SetTheme("nord"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.Theme != "nord" {
		t.Errorf("expected theme 'nord', got %q", loaded.Theme)
	}
	if loaded.PollInterval != "5s" {
		t.Errorf("expected other settings kept, got PollInterval %q", loaded.PollInterval)
	}
	if svc.Get().Theme != "nord" {
		t.Errorf("expected in-memory theme updated, got %q", svc.Get().Theme)
	}
}
