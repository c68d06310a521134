// Package tray provides the system tray interface for the Mudra gesture
// calculator.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the system tray menu: a live display line, recognition and
// voice toggles, a clear action, and quit.
type Tray struct {
	onToggle func(enabled bool)
	onVoice  func(enabled bool)
	onClear  func()
	onQuit   func()
	enabled  bool
	voiceOn  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuDisplay *systray.MenuItem
	menuGesture *systray.MenuItem
	menuToggle  *systray.MenuItem
	menuVoice   *systray.MenuItem
}

// New creates a Tray with recognition and voice enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
		voiceOn: true,
	}
}

// OnToggle sets the callback for the enable/disable menu item.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnVoice sets the callback for the voice menu item.
func (t *Tray) OnVoice(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onVoice = fn
}

// OnClear sets the callback for the clear menu item.
func (t *Tray) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClear = fn
}

// OnQuit sets the callback for the quit menu item.
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

// onReady sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Gesture Calculator")

	t.menuDisplay = systray.AddMenuItem("Display: 0", "Current calculator display")
	t.menuDisplay.Disable()
	t.menuGesture = systray.AddMenuItem("Last: none", "Last confirmed gesture")
	t.menuGesture.Disable()
	systray.AddSeparator()

	t.mu.RLock()
	enabled, voiceOn := t.enabled, t.voiceOn
	t.mu.RUnlock()

	t.menuToggle = systray.AddMenuItem(toggleTitle(enabled), "Toggle gesture recognition")
	t.menuVoice = systray.AddMenuItem(voiceTitle(voiceOn), "Toggle spoken announcements")
	menuClear := systray.AddMenuItem("Clear Calculator", "Reset the calculator")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-t.menuVoice.ClickedCh:
				t.handleVoice()
			case <-menuClear.ClickedCh:
				t.handleClear()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}

func voiceTitle(on bool) string {
	if on {
		return "Voice: on"
	}
	return "Voice: off"
}

func (t *Tray) onExit() {
	// Cleanup resources if needed
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	t.menuToggle.SetTitle(toggleTitle(enabled))
	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleVoice() {
	t.mu.Lock()
	t.voiceOn = !t.voiceOn
	voiceOn := t.voiceOn
	t.menuVoice.SetTitle(voiceTitle(voiceOn))
	callback := t.onVoice
	t.mu.Unlock()

	if callback != nil {
		callback(voiceOn)
	}
}

func (t *Tray) handleClear() {
	t.mu.RLock()
	callback := t.onClear
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetDisplay updates the calculator display line in the menu.
func (t *Tray) SetDisplay(text string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuDisplay != nil {
		if text == "" {
			text = "0"
		}
		t.menuDisplay.SetTitle("Display: " + text)
	}
}

// SetLastGesture updates the last gesture line in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuGesture != nil {
		if name == "" {
			name = "none"
		}
		t.menuGesture.SetTitle("Last: " + name)
	}
}

// SetEnabled seeds or corrects the recognition toggle, typically with
// state restored from a previous session.
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
}

// SetVoiceEnabled seeds or corrects the voice toggle.
func (t *Tray) SetVoiceEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.voiceOn = enabled
	if t.menuVoice != nil {
		t.menuVoice.SetTitle(voiceTitle(enabled))
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
