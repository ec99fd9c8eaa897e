// Package ui provides the tray and console presentation sinks.
package ui

import (
	"errors"
	"sync"

	"fyne.io/systray"
)

var (
	// ErrTrayAlreadyRunning is returned when attempting to modify callbacks after Run() has been called.
	ErrTrayAlreadyRunning = errors.New("cannot modify callbacks after Tray.Run() is called")
	// ErrTrayRunTwice is returned when Run() is called more than once.
	ErrTrayRunTwice = errors.New("Tray.Run() called twice")
	// ErrTrayMissingCallbacks is returned when Run() is called without all required callbacks set.
	ErrTrayMissingCallbacks = errors.New("all callbacks (OnStatistics, OnQuit) must be set before calling Run()")
)

// Tray manages the system tray icon. It doubles as the presentation sink:
// published status lines become the icon tooltip and the first menu entry.
type Tray struct {
	mu      sync.Mutex
	ready   bool
	running bool
	pending string

	menuStatus     *systray.MenuItem
	menuStatistics *systray.MenuItem
	menuQuit       *systray.MenuItem

	// Callbacks - must be set before Run() is called
	onStatistics func()
	onQuit       func()

	done      chan struct{}
	closeOnce sync.Once
}

// NewTray creates a new system tray manager.
func NewTray() *Tray {
	return &Tray{done: make(chan struct{})}
}

// OnStatistics registers a callback for when Statistics is clicked.
// Must be called before Run(). Returns ErrTrayAlreadyRunning if called after Run().
func (t *Tray) OnStatistics(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrayAlreadyRunning
	}
	t.onStatistics = callback
	return nil
}

// OnQuit registers a callback for when Quit is clicked.
// Must be called before Run(). Returns ErrTrayAlreadyRunning if called after Run().
func (t *Tray) OnQuit(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrayAlreadyRunning
	}
	t.onQuit = callback
	return nil
}

// Publish updates the tray tooltip and status menu entry with the latest
// status line. Lines published before the tray is ready are applied once it
// comes up. Never blocks.
func (t *Tray) Publish(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		t.pending = text
		return
	}
	systray.SetTooltip(text)
	t.menuStatus.SetTitle(text)
}

// Run starts the system tray icon and blocks until the tray is closed. All
// callbacks must be registered first.
// Returns ErrTrayMissingCallbacks if any callback is not set.
// Returns ErrTrayRunTwice if called more than once.
func (t *Tray) Run() error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrTrayRunTwice
	}
	if t.onStatistics == nil || t.onQuit == nil {
		t.mu.Unlock()
		return ErrTrayMissingCallbacks
	}
	t.running = true
	t.mu.Unlock()

	systray.Run(t.onReady, t.onExit)
	return nil
}

// Quit closes the system tray icon and terminates the click handler
// goroutine. Safe to call multiple times.
func (t *Tray) Quit() {
	t.closeOnce.Do(func() {
		close(t.done)
		systray.Quit()
	})
}

// onReady is called when the tray is ready to be configured.
func (t *Tray) onReady() {
	systray.SetIcon(iconTrafficPNG)
	systray.SetTitle("Trafic")
	systray.SetTooltip("Trafic")

	t.mu.Lock()
	t.menuStatus = systray.AddMenuItem("Waiting for first sample...", "Accumulated traffic since start")
	t.menuStatus.Disable()

	systray.AddSeparator()

	t.menuStatistics = systray.AddMenuItem("Statistics", "Show traffic statistics")
	t.menuQuit = systray.AddMenuItem("Quit", "Quit the application")

	t.ready = true
	if t.pending != "" {
		systray.SetTooltip(t.pending)
		t.menuStatus.SetTitle(t.pending)
		t.pending = ""
	}
	t.mu.Unlock()

	go t.handleMenuClicks()
}

// onExit is called when the tray is being closed.
func (t *Tray) onExit() {}

// handleMenuClicks processes menu item clicks.
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.done:
			return
		case _, ok := <-t.menuStatistics.ClickedCh:
			if !ok {
				return
			}
			if t.onStatistics != nil {
				t.onStatistics()
			}
		case _, ok := <-t.menuQuit.ClickedCh:
			if !ok {
				return
			}
			if t.onQuit != nil {
				t.onQuit()
			}
		}
	}
}
