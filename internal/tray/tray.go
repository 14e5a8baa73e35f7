// Package tray provides the system tray interface for the mudra mirror.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onEdit   func()
	onReset  func()
	onOpen   func()
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuMode   *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback for pausing/resuming gesture processing.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnEditLayout sets the callback for the edit-layout menu item.
func (t *Tray) OnEditLayout(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEdit = fn
}

// OnResetLayout sets the callback for the reset-layout menu item.
func (t *Tray) OnResetLayout(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReset = fn
}

// OnOpen sets the callback for opening the mirror in a browser.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Virtual Try-On Mirror")

	t.menuToggle = systray.AddMenuItem("● Enabled", "Toggle gesture processing")
	systray.AddSeparator()

	t.menuMode = systray.AddMenuItem("Mode: mirror", "Current view mode")
	t.menuMode.Disable()
	systray.AddSeparator()

	menuEdit := systray.AddMenuItem("Edit Layout", "Toggle widget edit mode")
	menuReset := systray.AddMenuItem("Reset Layout", "Move all widgets back to their base positions")
	systray.AddSeparator()

	menuOpen := systray.AddMenuItem("Open Mirror...", "Open the mirror in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuEdit.ClickedCh:
				t.handle(t.edit())
			case <-menuReset.ClickedCh:
				t.handle(t.reset())
			case <-menuOpen.ClickedCh:
				t.handle(t.open())
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Enabled")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) edit() func() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.onEdit
}

func (t *Tray) reset() func() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.onReset
}

func (t *Tray) open() func() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.onOpen
}

func (t *Tray) handle(fn func()) {
	if fn != nil {
		fn()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetMode updates the mode display in the menu.
func (t *Tray) SetMode(mode string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuMode != nil {
		t.menuMode.SetTitle("Mode: " + mode)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
