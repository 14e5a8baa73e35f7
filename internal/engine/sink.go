package engine

import (
	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/layout"
)

// StatusLevel tags a status line for the rendering layer.
type StatusLevel string

const (
	StatusIdle StatusLevel = "idle"
	StatusOK   StatusLevel = "ok"
	StatusWarn StatusLevel = "warn"
)

// Sink receives the engine's output. The rendering layer applies these
// updates; the engine never touches the display itself. Implementations
// must not call back into the engine.
type Sink interface {
	// WidgetMoved reports a widget offset change with the transition
	// the renderer should animate it with.
	WidgetMoved(p layout.Placement)

	// Pointer reports pinch-pointer visibility and screen position.
	Pointer(visible bool, p geom.Point)

	// Status reports the one-line session status and its severity.
	Status(text string, level StatusLevel)

	// ButtonActive drives the pressed-button visual flash.
	ButtonActive(active bool)

	// ModeChanged reports a mirror/try-on switch for layout swapping.
	ModeChanged(m Mode)

	// EditChanged reports whether widget edit mode is on.
	EditChanged(enabled bool)

	// CountdownTick reports the countdown numeral; 0 hides it.
	CountdownTick(remaining int)

	// PhotoPreview shows or hides the captured photo.
	PhotoPreview(visible bool, jpeg []byte)

	// SaveRequested hands off a confirmed photo for persisting.
	SaveRequested(jpeg []byte)
}

// FrameSource supplies a still image of the live video when the
// countdown reaches zero.
type FrameSource interface {
	CaptureStill() ([]byte, error)
}
