package engine

import (
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// CaptureState is the photo flow state.
type CaptureState string

const (
	// CaptureIdle: no countdown running, no photo pending.
	CaptureIdle CaptureState = "idle"
	// CaptureCounting: the countdown is ticking toward a capture.
	CaptureCounting CaptureState = "countdown"
	// CaptureReady: a photo is captured and awaiting thumb confirmation.
	CaptureReady CaptureState = "ready"
)

// captureFlow holds the countdown state machine. The tick timer handle
// is kept so a mode switch can cancel it; the tick callback re-checks
// the state anyway in case the cancel lost the race.
type captureFlow struct {
	state CaptureState
	ticks int
	timer Timer
	photo []byte
}

// Capture returns the current photo flow state.
func (e *Engine) Capture() CaptureState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.capture.state
}

// startCountdown begins the 3-tick countdown. Only valid in try-on
// mode; a running countdown is never restarted. Starting over a pending
// photo (retake) discards it first.
func (e *Engine) startCountdown() {
	if e.mode != ModeTryOn || e.capture.state == CaptureCounting {
		return
	}

	if e.capture.photo != nil {
		e.capture.photo = nil
		e.sink.PhotoPreview(false, nil)
	}

	e.capture.state = CaptureCounting
	e.capture.ticks = CountdownTicks
	e.sink.CountdownTick(CountdownTicks)
	e.scheduleTick()
}

func (e *Engine) scheduleTick() {
	e.capture.timer = e.sched.AfterFunc(CountdownInterval, e.countdownTick)
}

// countdownTick advances the countdown by one step. A stale tick (the
// countdown was cancelled after scheduling) is a no-op.
func (e *Engine) countdownTick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.capture.state != CaptureCounting {
		return
	}

	e.capture.ticks--
	if e.capture.ticks > 0 {
		e.sink.CountdownTick(e.capture.ticks)
		e.scheduleTick()
		return
	}

	e.sink.CountdownTick(0)
	e.takePhoto()
}

// takePhoto grabs a still from the frame source and moves to
// CaptureReady. Source failure drops back to idle with a warning.
func (e *Engine) takePhoto() {
	if e.frames == nil {
		e.capture.state = CaptureIdle
		e.sink.Status("No camera available for capture", StatusWarn)
		return
	}

	jpeg, err := e.frames.CaptureStill()
	if err != nil {
		e.capture.state = CaptureIdle
		e.sink.Status("Could not capture a photo", StatusWarn)
		return
	}

	e.capture.state = CaptureReady
	e.capture.photo = jpeg
	e.sink.PhotoPreview(true, jpeg)
	e.sink.Status("Thumbs up to save, thumbs down to retake", StatusOK)
}

// clearCapture cancels any pending countdown and discards a pending
// photo. Called on mode switches so stale ticks cannot fire into the
// new mode.
func (e *Engine) clearCapture() {
	if e.capture.timer != nil {
		e.capture.timer.Stop()
		e.capture.timer = nil
	}
	if e.capture.state == CaptureIdle {
		return
	}
	e.capture = captureFlow{state: CaptureIdle}
	e.sink.CountdownTick(0)
	e.sink.PhotoPreview(false, nil)
}

// thumbSignal is the outcome of the thumb gesture classifier.
type thumbSignal int

const (
	thumbNone thumbSignal = iota
	thumbUp
	thumbDown
)

// thumbGesture classifies an isolated thumb extension. All non-thumb
// fingertips must sit below their PIP joints (folded, in image
// coordinates where y grows downward); the thumb tip must then clear
// both the thumb base and the wrist by a margin, up or down. Anything
// ambiguous is no gesture.
func thumbGesture(h detector.HandLandmarks) thumbSignal {
	pts := h.Points

	folded := [4][2]int{
		{detector.IndexTip, detector.IndexPIP},
		{detector.MiddleTip, detector.MiddlePIP},
		{detector.RingTip, detector.RingPIP},
		{detector.PinkyTip, detector.PinkyPIP},
	}
	for _, f := range folded {
		if pts[f[0]].Y < pts[f[1]].Y+FoldMargin {
			return thumbNone
		}
	}

	tip := pts[detector.ThumbTip].Y
	base := pts[detector.ThumbMCP].Y
	wrist := pts[detector.Wrist].Y

	switch {
	case tip < base-ThumbMargin && tip < wrist-ThumbMargin:
		return thumbUp
	case tip > base+ThumbMargin && tip > wrist+ThumbMargin:
		return thumbDown
	}
	return thumbNone
}

// processThumbs evaluates thumb confirmations while a photo is pending.
// The first qualifying hand each frame is honored; firings share a
// cooldown with other one-shot gestures.
func (e *Engine) processThumbs(hands []detector.HandLandmarks, now time.Time) {
	if e.capture.state != CaptureReady {
		return
	}
	if now.Sub(e.lastGesture) < GestureCooldown {
		return
	}

	for i := range hands {
		switch thumbGesture(hands[i]) {
		case thumbUp:
			e.lastGesture = now
			e.sink.SaveRequested(e.capture.photo)
			e.capture = captureFlow{state: CaptureIdle}
			e.sink.PhotoPreview(false, nil)
			e.sink.Status("Photo saved", StatusOK)
			return
		case thumbDown:
			e.lastGesture = now
			e.capture.state = CaptureIdle
			e.startCountdown() // discards the rejected photo and restarts
			return
		}
	}
}
