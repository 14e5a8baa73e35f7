// Package app wires the camera, hand tracker, gesture engine, gallery
// and websocket hub into the running mirror application.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/gallery"
	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/layout"
	"github.com/ayusman/mudra/internal/server"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while nobody is in front of the mirror.
	IdleFPS = 5
	// ActiveFPS is the frame rate while hands are being tracked.
	ActiveFPS = 15
	// IdleTimeoutMs is how long to keep tracking after the last hand
	// disappears before dropping back to idle.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	CameraID int
	Mirror   bool
	Gallery  *gallery.Store
	Detector detector.Config
	// PresenceThresh is the percent of changed pixels that wakes the
	// pipeline from idle; zero means the default.
	PresenceThresh float64
}

// App orchestrates the camera → tracker → engine pipeline and owns the
// websocket hub the UIs attach to.
type App struct {
	config   Config
	camera   capture.Camera
	presence *capture.PresenceDetector
	detector detector.Detector
	engine   *engine.Engine
	hub      *server.Hub
	enabled  bool
	onMode   func(engine.Mode)
	mu       sync.RWMutex
	stopCh   chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	presenceThresh := config.PresenceThresh
	if presenceThresh <= 0 {
		presenceThresh = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		presence: capture.NewPresenceDetector(presenceThresh),
		enabled:  true,
	}
	a.camera.SetMirror(config.Mirror)

	a.hub = server.NewHub(a)
	a.engine = engine.New(engine.Config{
		Sink:   &uiSink{hub: a.hub, gallery: config.Gallery, onMode: a.notifyModeChanged},
		Frames: a.camera,
	})

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand tracking")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// Dispatch forwards a UI command to the gesture engine.
func (a *App) Dispatch(action engine.Action) {
	a.engine.Dispatch(action)
}

// UpdateLayout forwards a UI layout report to the gesture engine.
func (a *App) UpdateLayout(r engine.LayoutReport) {
	a.engine.UpdateLayout(r)
}

// OnModeChanged registers a callback invoked on every mirror/try-on
// mode switch, so shells outside the websocket (the tray) can track it.
func (a *App) OnModeChanged(fn func(engine.Mode)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onMode = fn
}

func (a *App) notifyModeChanged(m engine.Mode) {
	a.mu.RLock()
	fn := a.onMode
	a.mu.RUnlock()

	if fn != nil {
		fn(m)
	}
}

// SetEnabled enables or disables gesture processing.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Engine returns the gesture engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Hub returns the websocket hub for the HTTP server to mount.
func (a *App) Hub() *server.Hub {
	return a.hub
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Start opens the camera and begins the processing pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Mirror pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.presence.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Mirror pipeline stopped")
}

// uiSink fans engine output to the websocket hub and routes photo saves
// into the gallery.
type uiSink struct {
	hub     *server.Hub
	gallery *gallery.Store
	onMode  func(engine.Mode)
}

func (s *uiSink) WidgetMoved(p layout.Placement) { s.hub.WidgetMoved(p) }

func (s *uiSink) Pointer(visible bool, p geom.Point) { s.hub.Pointer(visible, p) }

func (s *uiSink) Status(text string, level engine.StatusLevel) { s.hub.Status(text, level) }

func (s *uiSink) ButtonActive(active bool) { s.hub.ButtonActive(active) }

func (s *uiSink) ModeChanged(m engine.Mode) {
	s.hub.ModeChanged(m)
	if s.onMode != nil {
		s.onMode(m)
	}
}

func (s *uiSink) EditChanged(enabled bool) { s.hub.EditChanged(enabled) }

func (s *uiSink) CountdownTick(remaining int) { s.hub.CountdownTick(remaining) }

func (s *uiSink) PhotoPreview(visible bool, jpeg []byte) { s.hub.PhotoPreview(visible, jpeg) }

// SaveRequested persists the photo off the engine's goroutine; the
// gallery decodes and thumbnails, which must not stall frame processing.
func (s *uiSink) SaveRequested(jpeg []byte) {
	if s.gallery == nil {
		log.Println("No gallery configured, dropping photo")
		return
	}

	go func() {
		p, err := s.gallery.Save(jpeg)
		if err != nil {
			log.Printf("Failed to save photo: %v", err)
			return
		}
		log.Printf("Photo saved: %s", p.ID)
		s.hub.PhotoSaved(p.ID)
	}()
}
