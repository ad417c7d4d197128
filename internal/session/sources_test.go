package session

import (
	"path/filepath"
	"testing"
	"time"
)

func TestPollSource(t *testing.T) {
	clock := newFakeClock(epoch)
	poll := &PollSource{Interval: 2 * time.Second, Clock: clock}

	calls := 0
	stop := poll.OnChange(func() { calls++ })

	clock.Advance(1 * time.Second)
	if calls != 0 {
		t.Errorf("poll fired early: %d", calls)
	}
	clock.Advance(5 * time.Second)
	if calls != 3 {
		t.Errorf("poll fired %d times in 6s, want 3", calls)
	}

	stop()
	clock.Advance(10 * time.Second)
	if calls != 3 {
		t.Errorf("poll fired after stop: %d", calls)
	}
}

func TestNewPollSource_DefaultInterval(t *testing.T) {
	if p := NewPollSource(0); p.Interval != DefaultPollInterval {
		t.Errorf("Interval = %v, want %v", p.Interval, DefaultPollInterval)
	}
}

func TestFileWatchSource_OtherProcessWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFile)
	src := NewFileWatchSource(path, nil)

	changed := make(chan struct{}, 16)
	stop := src.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer stop()

	// A second store instance stands in for another otdash process.
	other := NewFileStore(path)
	if err := other.Set(KeySessionExpires, "2025-01-15T10:00:00Z"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification for session file write")
	}
}

func TestFileWatchSource_MissingDirectory(t *testing.T) {
	src := NewFileWatchSource(filepath.Join(t.TempDir(), "missing", SessionFile), nil)
	stop := src.OnChange(func() {})
	stop()
}
