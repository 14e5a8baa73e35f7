package engine

import (
	"math"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// swipeTracker measures net horizontal fingertip travel for one hand
// slot. The baseline re-anchors when the gesture goes stale or the
// fingertip sits still, so only deliberate sweeps accumulate distance.
type swipeTracker struct {
	active bool
	startX float64
	startT time.Time
	lastX  float64
	moveT  time.Time // time of the last significant x movement
}

func (t *swipeTracker) anchor(x float64, now time.Time) {
	*t = swipeTracker{active: true, startX: x, startT: now, lastX: x, moveT: now}
}

// processSwipe updates the per-slot trackers and fires a mode switch
// when a qualifying sweep completes. Swipes are one-directional per
// mode: rightward leaves the mirror, leftward returns to it.
func (e *Engine) processSwipe(hands []detector.HandLandmarks, now time.Time) {
	for i := 0; i < MaxHands; i++ {
		if i >= len(hands) {
			e.swipes[i] = swipeTracker{}
			continue
		}

		x := e.mirroredX(hands[i])
		t := &e.swipes[i]

		if !t.active {
			t.anchor(x, now)
			continue
		}

		if math.Abs(x-t.lastX) >= SwipeMoveEps {
			t.moveT = now
		}
		t.lastX = x

		if now.Sub(t.startT) > SwipeMaxWindow || now.Sub(t.moveT) > SwipeIdleWindow {
			t.anchor(x, now)
			continue
		}

		// A drag owns the hand: keep the baseline pinned under it so
		// the travel cannot fire a swipe the moment the drag releases.
		if e.session.active && e.session.mode == pinchDrag {
			t.anchor(x, now)
			continue
		}
		if now.Sub(e.lastSwipe) < SwipeCooldown {
			continue
		}

		dx := x - t.startX
		switch {
		case e.mode == ModeMirror && dx > SwipeThreshold:
			e.switchMode(ModeTryOn, now)
			return
		case e.mode == ModeTryOn && dx < -SwipeThreshold:
			e.switchMode(ModeMirror, now)
			return
		}
	}
}

// switchMode transitions between mirror and try-on, cancelling anything
// the old mode had in flight: edit mode is forced off entering try-on,
// and a pending countdown or photo is discarded either way.
func (e *Engine) switchMode(m Mode, now time.Time) {
	e.mode = m
	e.lastSwipe = now
	e.resetSwipes()
	e.clearCapture()

	if m == ModeTryOn && e.editEnabled {
		e.editEnabled = false
		e.sink.EditChanged(false)
	}

	e.sink.ModeChanged(m)
	if m == ModeTryOn {
		e.sink.Status("Try-on mode: pinch the shutter or swipe left to go back", StatusOK)
	} else {
		e.sink.Status("Mirror mode", StatusOK)
	}
}

func (e *Engine) resetSwipes() {
	for i := range e.swipes {
		e.swipes[i] = swipeTracker{}
	}
}
