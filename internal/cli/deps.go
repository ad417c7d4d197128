package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"

	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/logging"
	"github.com/xolan/otdash/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	Now    func() time.Time

	// Services is nil when InitErr is set.
	Services *service.Services
	InitErr  error

	// closeLog releases the log file opened by DefaultDeps.
	closeLog func() error
	stdin    *bufio.Reader
}

// DefaultDeps loads the config, opens the log file and wires the services.
// A broken config is reported through InitErr rather than failing here so
// that commands such as "completion" and "help" still work.
func DefaultDeps() *Deps {
	d := &Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Exit:   os.Exit,
		Now:    time.Now,
	}

	level := config.DefaultConfig().SlogLevel()
	if configPath, err := config.GetConfigPath(); err == nil {
		if cfg, err := config.LoadOrDefault(configPath); err == nil {
			level = cfg.SlogLevel()
		}
	}

	logger, closeLog, _ := logging.OpenDefault(level)
	d.closeLog = closeLog

	services, err := service.NewServices(logger)
	if err != nil {
		d.InitErr = err
		return d
	}
	d.Services = services
	return d
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Now:      time.Now,
		Services: services,
	}
}

// Close stops background session work and closes the log file.
func (d *Deps) Close() error {
	if d.Services != nil {
		d.Services.Close()
	}
	if d.closeLog != nil {
		return d.closeLog()
	}
	return nil
}

// Global deps instance for CLI, created on first use.
var deps *Deps

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps drops the current deps; the next GetDeps builds defaults.
func ResetDeps() {
	deps = nil
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	if deps == nil {
		deps = DefaultDeps()
	}
	return deps
}

// errNoServices is reported when a command needs services that failed to start.
var errNoServices = errors.New("services are not initialized")
