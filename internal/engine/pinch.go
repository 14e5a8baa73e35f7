package engine

import (
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geom"
)

// pinchThreshold returns the pinch distance threshold for a hand of the
// given wrist-to-knuckle span: scale-relative with an absolute floor.
func pinchThreshold(span float64) float64 {
	t := PinchScale * span
	if t < PinchFloor {
		t = PinchFloor
	}
	return t
}

// isPinching reports whether thumb tip and index tip are strictly
// closer than the scale-relative threshold. Distance exactly at the
// threshold is not a pinch.
func isPinching(h detector.HandLandmarks) bool {
	span := detector.PlanarDist(h.Points[detector.Wrist], h.Points[detector.MiddleMCP])
	strength := detector.PlanarDist(h.Points[detector.ThumbTip], h.Points[detector.IndexTip])
	return strength < pinchThreshold(span)
}

// processPinch runs the single pinch lifecycle for this frame. The
// first pinching hand in tracker order drives the session; later
// pinching hands cannot override an already-bound outcome.
func (e *Engine) processPinch(hands []detector.HandLandmarks, now time.Time) {
	pinching := -1
	for i := range hands {
		if isPinching(hands[i]) {
			pinching = i
			break
		}
	}

	// The pointer follows the driving hand, or the first hand when
	// nothing is pinching.
	ptr := e.pointerAt(hands[0])
	if pinching >= 0 {
		ptr = e.pointerAt(hands[pinching])
	}
	e.sink.Pointer(true, ptr)

	if pinching < 0 {
		e.releasePinch()
		return
	}

	if !e.session.active {
		e.beginPinch(ptr, now)
		return
	}

	if e.session.mode == pinchDrag {
		if pl, ok := e.widgets.SetPosition(e.session.widget, ptr); ok {
			e.sink.WidgetMoved(pl)
		}
	}
}

// beginPinch classifies a fresh pinch: button press first (hit-tested
// with an outward margin and cooldown-gated), then widget drag when
// edit mode is on, otherwise the session idles until release.
func (e *Engine) beginPinch(ptr geom.Point, now time.Time) {
	e.session = pinchSession{active: true, mode: pinchIdle}

	if btn, ok := e.hitButton(ptr); ok && now.Sub(e.lastButton) >= ButtonCooldown {
		e.lastButton = now
		e.session.mode = pinchButton
		e.flashButton()
		e.perform(btn.Action)
		return
	}

	if e.editEnabled {
		if key, ok := e.widgets.HitTest(ptr); ok {
			e.session.mode = pinchDrag
			e.session.widget = key
		}
	}
}

// releasePinch ends an active lifecycle. A released drag snaps the
// widget; every mode resets the session.
func (e *Engine) releasePinch() {
	if !e.session.active {
		return
	}
	if e.session.mode == pinchDrag {
		if pl, ok := e.widgets.Snap(e.session.widget); ok {
			e.sink.WidgetMoved(pl)
		}
	}
	e.session = pinchSession{}
}

// hitButton returns the first enabled button whose margin-expanded
// rectangle contains p.
func (e *Engine) hitButton(p geom.Point) (Button, bool) {
	for _, b := range e.buttons {
		if !b.Enabled {
			continue
		}
		if b.Rect.Expand(ButtonMargin).Contains(p) {
			return b, true
		}
	}
	return Button{}, false
}

// flashButton lights the pressed-button visual and schedules the
// cancellable clear.
func (e *Engine) flashButton() {
	e.sink.ButtonActive(true)
	if e.flashTimer != nil {
		e.flashTimer.Stop()
	}
	e.flashTimer = e.sched.AfterFunc(ButtonFlash, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.sink.ButtonActive(false)
	})
}
