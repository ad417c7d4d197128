package session

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	// WarnBefore is how long before expiry the warning fires.
	WarnBefore = 60 * time.Second
	// LogoutBefore is how long before expiry the forced logout fires.
	LogoutBefore = 5 * time.Second
	// CountdownInterval is the countdown refresh period while warning.
	CountdownInterval = time.Second
)

// State is the lifecycle state of the session.
type State int

const (
	Idle State = iota
	Scheduled
	Warning
	LoggedOut
)

func (s State) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Warning:
		return "warning"
	case LoggedOut:
		return "logged out"
	default:
		return "idle"
	}
}

// Logout reasons passed to the logout hook and carried by events.
const (
	ReasonExpired = "Session expired. Please log in again."
	ReasonInvalid = "Session expiry unreadable. Please log in again."
)

// Event is delivered to subscribers on every state change and countdown tick.
type Event struct {
	State       State
	ExpiresAt   time.Time
	SecondsLeft int
	Reason      string
}

// Options configures a Manager.
type Options struct {
	Clock Clock
	// Read returns the raw persisted expiry value. Defaults to ExpiryValue
	// over Store.
	Read func() (string, error)
	// Store backs the default Read.
	Store Store
	// OnLogout runs the forced logout: backend call and local cleanup.
	// It is called without the manager lock held.
	OnLogout func(reason string)
	Logger   *slog.Logger
}

// Manager owns the warning, auto-logout and countdown timers of one
// session. All changes to the persisted expiry funnel through MaybeChanged,
// which re-arms the timers only when the value differs from the last one seen.
type Manager struct {
	clock    Clock
	read     func() (string, error)
	onLogout func(reason string)
	logger   *slog.Logger

	mu          sync.Mutex
	state       State
	expiresAt   time.Time
	secondsLeft int
	lastSeen    string
	gen         uint64
	warnTimer   Timer
	logoutTimer Timer
	tickTimer   Timer

	listenerMu sync.Mutex
	listeners  map[int]func(Event)
	nextID     int

	stops []func()
}

// NewManager returns an idle Manager.
func NewManager(opts Options) *Manager {
	m := &Manager{
		clock:     opts.Clock,
		read:      opts.Read,
		onLogout:  opts.OnLogout,
		logger:    opts.Logger,
		listeners: map[int]func(Event){},
	}
	if m.clock == nil {
		m.clock = RealClock{}
	}
	if m.read == nil && opts.Store != nil {
		store := opts.Store
		m.read = func() (string, error) { return ExpiryValue(store) }
	}
	if m.onLogout == nil {
		m.onLogout = func(string) {}
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

// Subscribe registers fn for events and returns a function that removes it.
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.listenerMu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.listenerMu.Unlock()

	return func() {
		m.listenerMu.Lock()
		delete(m.listeners, id)
		m.listenerMu.Unlock()
	}
}

// Observe connects sources to MaybeChanged. Close disconnects them.
func (m *Manager) Observe(sources ...ObservationSource) {
	for _, src := range sources {
		stop := src.OnChange(m.MaybeChanged)
		m.mu.Lock()
		m.stops = append(m.stops, stop)
		m.mu.Unlock()
	}
}

// Start records the current persisted value as seen and schedules from it.
func (m *Manager) Start() {
	value, err := m.readValue()
	if err != nil {
		return
	}
	m.mu.Lock()
	m.lastSeen = value
	m.mu.Unlock()
	m.apply(value, &value)
}

// MaybeChanged re-reads the persisted expiry and reschedules if it differs
// from the last value seen. Observation sources call it from their own
// goroutines; a call whose value has been superseded by a later one is
// dropped when it reaches the timers.
func (m *Manager) MaybeChanged() {
	value, err := m.readValue()
	if err != nil {
		return
	}

	m.mu.Lock()
	if value == m.lastSeen {
		m.mu.Unlock()
		return
	}
	m.lastSeen = value
	m.mu.Unlock()

	m.logger.Debug("session expiry changed", "value", value)
	m.apply(value, &value)
}

// ScheduleValue schedules from a raw persisted value. An empty value clears
// the timers; an unparseable one logs the session out.
func (m *Manager) ScheduleValue(value string) {
	m.apply(value, nil)
}

// Schedule arms the warning and auto-logout timers for expiresAt, replacing
// any armed ones. A warning time already past shows the warning at once; an
// expiry already past logs out at once.
func (m *Manager) Schedule(expiresAt time.Time) {
	m.schedule(expiresAt, nil)
}

// apply acts on a persisted value. When seen is non-nil the value came from
// an observation and is applied only while it is still the last value seen.
func (m *Manager) apply(value string, seen *string) {
	if value == "" {
		m.resetIfCurrent(seen)
		return
	}
	expiresAt, err := ParseExpiry(value)
	if err != nil {
		m.mu.Lock()
		if !m.currentLocked(seen) {
			m.mu.Unlock()
			return
		}
		gen := m.cancelLocked()
		m.mu.Unlock()
		m.logger.Warn("unparseable session expiry", "value", value, "error", err)
		m.forceLogout(gen, ReasonInvalid)
		return
	}
	m.schedule(expiresAt, seen)
}

// currentLocked reports whether seen is still the last observed value.
func (m *Manager) currentLocked(seen *string) bool {
	return seen == nil || *seen == m.lastSeen
}

func (m *Manager) schedule(expiresAt time.Time, seen *string) {
	m.mu.Lock()
	if !m.currentLocked(seen) {
		m.mu.Unlock()
		m.logger.Debug("dropping superseded session expiry", "expires_at", expiresAt)
		return
	}
	gen := m.cancelLocked()
	now := m.clock.Now()

	if !now.Before(expiresAt) {
		m.mu.Unlock()
		m.forceLogout(gen, ReasonExpired)
		return
	}

	m.expiresAt = expiresAt
	var events []Event
	warnDelay := expiresAt.Add(-WarnBefore).Sub(now)
	if warnDelay <= 0 {
		events = append(events, m.enterWarningLocked(gen, now)...)
	} else {
		events = append(events, m.setStateLocked(Scheduled, "")...)
		m.warnTimer = m.clock.AfterFunc(warnDelay, func() { m.fireWarning(gen) })
	}

	logoutDelay := max(expiresAt.Add(-LogoutBefore).Sub(now), 0)
	m.logoutTimer = m.clock.AfterFunc(logoutDelay, func() { m.forceLogout(gen, ReasonExpired) })
	m.mu.Unlock()

	m.logger.Info("session timers scheduled", "expires_at", expiresAt, "warn_in", warnDelay, "logout_in", logoutDelay)
	m.emit(events)
}

// Cancel is the user-initiated logout: every timer is stopped and the
// manager returns to Idle. The last seen value is forgotten so a session
// still persisted afterwards is picked up by the next observation.
func (m *Manager) Cancel() {
	m.mu.Lock()
	m.lastSeen = ""
	m.mu.Unlock()
	m.reset()
}

// Close cancels the timers and disconnects every observation source.
func (m *Manager) Close() {
	m.mu.Lock()
	stops := m.stops
	m.stops = nil
	m.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
	m.reset()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ExpiresAt returns the scheduled expiry, zero when idle.
func (m *Manager) ExpiresAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expiresAt
}

// SecondsLeft returns the countdown value; zero outside Warning.
func (m *Manager) SecondsLeft() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.secondsLeft
}

// LogoutIn returns the time left until the forced logout, zero when nothing
// is scheduled.
func (m *Manager) LogoutIn() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Scheduled && m.state != Warning {
		return 0
	}
	d := m.expiresAt.Add(-LogoutBefore).Sub(m.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

func (m *Manager) readValue() (string, error) {
	if m.read == nil {
		return "", nil
	}
	value, err := m.read()
	if err != nil {
		m.logger.Warn("reading session store", "error", err)
	}
	return value, err
}

func (m *Manager) reset() {
	m.resetIfCurrent(nil)
}

func (m *Manager) resetIfCurrent(seen *string) {
	m.mu.Lock()
	if !m.currentLocked(seen) {
		m.mu.Unlock()
		return
	}
	m.cancelLocked()
	m.expiresAt = time.Time{}
	events := m.setStateLocked(Idle, "")
	m.mu.Unlock()
	m.emit(events)
}

// cancelLocked stops every armed timer and invalidates pending callbacks.
func (m *Manager) cancelLocked() uint64 {
	for _, t := range []Timer{m.warnTimer, m.logoutTimer, m.tickTimer} {
		if t != nil {
			t.Stop()
		}
	}
	m.warnTimer, m.logoutTimer, m.tickTimer = nil, nil, nil
	m.gen++
	return m.gen
}

func (m *Manager) fireWarning(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state != Scheduled {
		m.mu.Unlock()
		return
	}
	m.warnTimer = nil
	events := m.enterWarningLocked(gen, m.clock.Now())
	m.mu.Unlock()
	m.emit(events)
}

func (m *Manager) enterWarningLocked(gen uint64, now time.Time) []Event {
	m.setStateLocked(Warning, "")
	m.secondsLeft = secondsUntil(m.expiresAt, now)
	events := []Event{{State: Warning, ExpiresAt: m.expiresAt, SecondsLeft: m.secondsLeft}}
	m.tickTimer = m.clock.AfterFunc(CountdownInterval, func() { m.tick(gen) })
	m.logger.Info("session expiring soon", "seconds_left", m.secondsLeft)
	return events
}

func (m *Manager) tick(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state != Warning {
		m.mu.Unlock()
		return
	}
	m.secondsLeft = secondsUntil(m.expiresAt, m.clock.Now())
	ev := Event{State: Warning, ExpiresAt: m.expiresAt, SecondsLeft: m.secondsLeft}
	m.tickTimer = m.clock.AfterFunc(CountdownInterval, func() { m.tick(gen) })
	m.mu.Unlock()
	m.emit([]Event{ev})
}

// forceLogout runs the LoggedOut transition unless the timers were re-armed
// after gen was taken.
func (m *Manager) forceLogout(gen uint64, reason string) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.cancelLocked()
	events := m.setStateLocked(LoggedOut, reason)
	m.mu.Unlock()

	m.logger.Info("session logged out", "reason", reason)
	m.emit(events)
	m.onLogout(reason)
	m.reset()
}

// setStateLocked moves to s and returns the event to emit, if any.
func (m *Manager) setStateLocked(s State, reason string) []Event {
	if s != Warning {
		m.secondsLeft = 0
	}
	if s == m.state {
		return nil
	}
	m.state = s
	return []Event{{State: s, ExpiresAt: m.expiresAt, SecondsLeft: m.secondsLeft, Reason: reason}}
}

func (m *Manager) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	m.listenerMu.Lock()
	listeners := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.listenerMu.Unlock()

	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

func secondsUntil(t, now time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}
