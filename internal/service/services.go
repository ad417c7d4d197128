package service

import (
	"log/slog"
	"net/http"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/logging"
	"github.com/xolan/otdash/internal/session"
)

// Services holds all service instances used by the application
type Services struct {
	Client    *api.Client
	Store     *session.Observed
	Session   *session.Manager
	Auth      *AuthService
	Overtime  *OvertimeService
	Report    *ReportService
	Export    *ExportService
	Notify    *NotificationService
	Settings  *SettingsService
	Directory *DirectoryService
	Config    *ConfigService
	Logger    *slog.Logger

	sessionPath string
	clock       session.Clock
}

// Options customizes NewServicesWith. Zero fields take defaults.
type Options struct {
	ConfigPath  string
	SessionPath string
	Config      config.Config
	Logger      *slog.Logger
	Clock       session.Clock
	HTTPClient  *http.Client
}

// NewServices creates a new Services instance with default paths
func NewServices(logger *slog.Logger) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	sessionPath, err := session.GetSessionPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWith(Options{
		ConfigPath:  configPath,
		SessionPath: sessionPath,
		Config:      cfg,
		Logger:      logger,
	}), nil
}

// NewServicesWith wires the services over explicit paths and config (useful
// for testing). The session manager is created idle; call StartSession to
// schedule it from the stored expiry.
func NewServicesWith(opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	store := session.NewObserved(session.NewFileStore(opts.SessionPath))

	clientOpts := []api.Option{
		api.WithToken(func() (string, error) { return store.Get(session.KeyToken) }),
		api.WithLogger(logger),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(opts.HTTPClient))
	}
	if timeout := opts.Config.Timeout(); timeout > 0 {
		clientOpts = append(clientOpts, api.WithTimeout(timeout))
	}
	client := api.NewClient(opts.Config.APIBaseURL, clientOpts...)

	auth := NewAuthService(client, store, logger)
	manager := session.NewManager(session.Options{
		Clock:    opts.Clock,
		Store:    store,
		OnLogout: auth.ForcedLogout,
		Logger:   logger,
	})
	auth.manager = manager

	return &Services{
		Client:    client,
		Store:     store,
		Session:   manager,
		Auth:      auth,
		Overtime:  NewOvertimeService(client, auth, opts.Config.Shifts, logger),
		Report:    NewReportService(client),
		Export:    NewExportService(client, auth, opts.Config.ExportDir, logger),
		Notify:    NewNotificationService(client, opts.Config.Poll(), logger),
		Settings:  NewSettingsService(client, opts.Config.Shifts),
		Directory: NewDirectoryService(client),
		Config:    NewConfigService(opts.ConfigPath, opts.Config),
		Logger:    logger,

		sessionPath: opts.SessionPath,
		clock:       opts.Clock,
	}
}

// StartSession connects the manager to its change sources and schedules
// from the stored expiry. The poll covers stores the file watch misses.
func (s *Services) StartSession() {
	poll := session.NewPollSource(s.Config.Get().Poll())
	if s.clock != nil {
		poll.Clock = s.clock
	}
	s.Session.Observe(
		s.Store,
		session.NewFileWatchSource(s.sessionPath, s.Logger),
		poll,
	)
	s.Session.Start()
}

// Close stops the session manager and its sources.
func (s *Services) Close() {
	s.Session.Close()
}
