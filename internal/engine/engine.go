// Package engine turns per-frame hand landmark observations into
// discrete interaction events: pinch drags and button presses, swipe
// mode switches, and the photo-capture countdown with thumb
// confirmation. All gesture state lives here; rendering and persistence
// are behind the Sink.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/layout"
)

// Mode is the global application mode, switched by horizontal swipes.
type Mode string

const (
	// ModeMirror is the plain mirror with movable overlay widgets.
	ModeMirror Mode = "mirror"
	// ModeTryOn is the try-on view with the capture flow enabled.
	ModeTryOn Mode = "tryon"
)

// Gesture tuning constants.
const (
	// MaxHands is the number of hand slots tracked per frame.
	MaxHands = 2

	// PinchScale scales the wrist-to-knuckle span into the pinch
	// threshold, so the gesture works at any distance from the camera.
	PinchScale = 0.7
	// PinchFloor is the absolute threshold floor for barely visible hands.
	PinchFloor = 0.05

	// ButtonMargin expands button hit areas to tolerate imprecise
	// pinch pointing, in pixels.
	ButtonMargin = 24.0
	// ButtonCooldown is the minimum time between button firings.
	ButtonCooldown = time.Second
	// ButtonFlash is how long the pressed-button visual stays lit.
	ButtonFlash = 300 * time.Millisecond

	// SwipeThreshold is the net horizontal fingertip travel, in
	// normalized camera coordinates, that qualifies as a swipe.
	SwipeThreshold = 0.20
	// SwipeMaxWindow bounds the time a swipe may take.
	SwipeMaxWindow = 600 * time.Millisecond
	// SwipeCooldown is the minimum time between mode switches.
	SwipeCooldown = 900 * time.Millisecond
	// SwipeIdleWindow re-anchors the swipe baseline when the fingertip
	// has been stationary this long, so a held-still hand cannot drift
	// into a false swipe.
	SwipeIdleWindow = 250 * time.Millisecond
	// SwipeMoveEps is the minimum x movement counted as motion.
	SwipeMoveEps = 0.01

	// CountdownTicks is the number of one-second countdown steps.
	CountdownTicks = 3
	// CountdownInterval is the time between countdown steps.
	CountdownInterval = time.Second

	// FoldMargin is how far a fingertip must sit below its mid joint
	// to count as folded, in normalized coordinates.
	FoldMargin = 0.02
	// ThumbMargin is how far the thumb tip must clear the thumb base
	// and the wrist to count as an up/down signal.
	ThumbMargin = 0.04
	// GestureCooldown rate-limits thumb confirmations.
	GestureCooldown = 1500 * time.Millisecond
)

// Button is an interactable screen rectangle bound to an action. The
// rendering layer reports buttons with their current geometry and
// whether they are visible/enabled in the active mode.
type Button struct {
	Action  Action
	Rect    geom.Rect
	Enabled bool
}

// LayoutReport is the rendering layer's description of the current
// screen: view size, whether the view is mirrored, and the measured
// rectangles of all widgets and buttons. Sent on startup and whenever
// the surrounding layout changes (e.g. viewport resize).
type LayoutReport struct {
	View    geom.Size
	Mirror  bool
	Widgets []layout.Measured
	Buttons []Button
}

// Config wires an Engine. Sink is required; Clock and Scheduler default
// to the system implementations. Frames may be nil until a camera is
// attached, in which case capture completion degrades to a warning.
type Config struct {
	Sink      Sink
	Frames    FrameSource
	Clock     Clock
	Scheduler Scheduler
}

// pinchMode is the bound outcome of an active pinch lifecycle.
type pinchMode int

const (
	pinchIdle pinchMode = iota // pinching over nothing
	pinchDrag
	pinchButton
)

// pinchSession is the single global pinch lifecycle. At most one drag
// or button action is in flight across all hands.
type pinchSession struct {
	active bool
	mode   pinchMode
	widget string // bound widget key while mode == pinchDrag
}

// Engine holds all gesture and mode state. Frame processing, timer
// callbacks and UI commands all serialize on one mutex; timer callbacks
// additionally re-check their triggering state, so a tick scheduled
// before a mode switch can never mutate the new state.
type Engine struct {
	mu     sync.Mutex
	sink   Sink
	frames FrameSource
	clock  Clock
	sched  Scheduler

	widgets *layout.Engine
	buttons []Button
	view    geom.Size
	mirror  bool

	mode        Mode
	editEnabled bool
	session     pinchSession
	swipes      [MaxHands]swipeTracker
	capture     captureFlow

	lastButton  time.Time
	lastSwipe   time.Time
	lastGesture time.Time

	flashTimer Timer
}

// New creates an Engine in mirror mode with edit disabled.
func New(cfg Config) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = systemScheduler{}
	}
	return &Engine{
		sink:    cfg.Sink,
		frames:  cfg.Frames,
		clock:   clock,
		sched:   sched,
		widgets: layout.NewEngine(),
		view:    geom.Size{W: 1280, H: 720},
		mirror:  true,
		mode:    ModeMirror,
		capture: captureFlow{state: CaptureIdle},
	}
}

// Mode returns the current application mode.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// EditEnabled reports whether widget edit mode is on.
func (e *Engine) EditEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editEnabled
}

// UpdateLayout replaces the screen geometry the engine hit-tests
// against. Widget offsets survive: base centers are re-derived from the
// measured rectangles.
func (e *Engine) UpdateLayout(r LayoutReport) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if r.View.W > 0 && r.View.H > 0 {
		e.view = r.View
	}
	e.mirror = r.Mirror
	e.widgets.Init(r.Widgets)
	e.buttons = append(e.buttons[:0], r.Buttons...)
}

// Dispatch runs a UI command. The Action enum is closed, so the switch
// is exhaustive by construction.
func (e *Engine) Dispatch(a Action) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.perform(a)
}

func (e *Engine) perform(a Action) {
	switch a {
	case ActionReset:
		for _, pl := range e.widgets.Reset() {
			e.sink.WidgetMoved(pl)
		}
		e.sink.Status("Layout reset", StatusOK)
	case ActionToggleEdit:
		if e.mode == ModeTryOn {
			return
		}
		e.editEnabled = !e.editEnabled
		e.sink.EditChanged(e.editEnabled)
		if e.editEnabled {
			e.sink.Status("Edit layout: pinch a widget to move it", StatusOK)
		} else {
			e.sink.Status("Edit layout off", StatusOK)
		}
	case ActionShutter:
		e.startCountdown()
	}
}

// Warn surfaces an acquisition problem (camera or tracker failure) as a
// warning status. Processing resumes with the next good frame.
func (e *Engine) Warn(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink.Status(text, StatusWarn)
}

// ProcessFrame consumes one multi-hand observation from the tracker.
// Incomplete hands are skipped; an empty frame resets transient session
// state and surfaces an idle status, never an error.
func (e *Engine) ProcessFrame(hands []detector.HandLandmarks) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	valid := hands[:0:0]
	for i := range hands {
		if hands[i].Valid() {
			valid = append(valid, hands[i])
		}
		if len(valid) == MaxHands {
			break
		}
	}

	if len(valid) == 0 {
		e.session = pinchSession{}
		e.resetSwipes()
		e.sink.Pointer(false, geom.Point{})
		e.sink.Status("Show a hand to the camera", StatusIdle)
		return
	}

	if len(valid) == 1 {
		e.sink.Status("Tracking 1 hand", StatusOK)
	} else {
		e.sink.Status(fmt.Sprintf("Tracking %d hands", len(valid)), StatusOK)
	}

	e.processPinch(valid, now)
	e.processSwipe(valid, now)
	e.processThumbs(valid, now)
}

// pointerAt maps a hand's index fingertip into display pixels,
// mirroring x when the view is a reflection.
func (e *Engine) pointerAt(h detector.HandLandmarks) geom.Point {
	tip := h.Points[detector.IndexTip]
	x := tip.X
	if e.mirror {
		x = 1 - x
	}
	return geom.Point{X: x * e.view.W, Y: tip.Y * e.view.H}
}

// mirroredX returns a hand's index fingertip x in normalized display
// orientation.
func (e *Engine) mirroredX(h detector.HandLandmarks) float64 {
	x := h.Points[detector.IndexTip].X
	if e.mirror {
		return 1 - x
	}
	return x
}
