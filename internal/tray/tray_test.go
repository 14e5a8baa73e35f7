package tray

import "testing"

func TestNew_StartsEnabled(t *testing.T) {
	if !New().IsEnabled() {
		t.Error("a fresh tray should report enabled")
	}
}

func TestSetMode_BeforeMenuReady(t *testing.T) {
	// The menu items only exist once systray calls onReady; a mode
	// switch arriving before that must be a safe no-op.
	New().SetMode("tryon")
}
