package service

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/xolan/otdash/internal/config"
)

const configHeader = "# otdash configuration file\n# See \"otdash config --init\" for a commented sample.\n\n"

// ConfigService holds the effective configuration and writes changes back
// to the TOML file. It is shared by the TUI goroutines.
type ConfigService struct {
	path string

	mu  sync.RWMutex
	cfg config.Config
}

// NewConfigService wraps cfg, which was loaded from path.
func NewConfigService(path string, cfg config.Config) *ConfigService {
	return &ConfigService{path: path, cfg: cfg}
}

// Get returns a copy of the effective configuration.
func (s *ConfigService) Get() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// GetPath returns the config file path.
func (s *ConfigService) GetPath() string {
	return s.path
}

// Exists reports whether the config file is present.
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Update normalizes and validates cfg, then saves it. Nothing is written
// when validation fails.
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	s.cfg = cfg
	return nil
}

// SetTheme saves name as the TUI theme.
func (s *ConfigService) SetTheme(name string) error {
	cfg := s.Get()
	cfg.Theme = name
	return s.Update(cfg)
}

// Init writes the commented sample config. An existing file is left alone.
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.path)
	}
	if err := writeFileAtomic(s.path, []byte(config.GenerateSampleConfig())); err != nil {
		return fmt.Errorf("writing sample config: %w", err)
	}
	return nil
}
