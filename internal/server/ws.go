// Package server provides the HTTP server for the mudra mirror.
package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/layout"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Controller is the engine surface the UI drives over the websocket.
type Controller interface {
	Dispatch(engine.Action)
	UpdateLayout(engine.LayoutReport)
}

// Hub bridges the gesture engine and the rendering layer: engine output
// events fan out to every connected UI, and UI commands (actions, layout
// reports) feed back into the engine.
type Hub struct {
	controller Controller
	clients    map[*client]bool
	mu         sync.RWMutex
}

// client is one connected UI. The connection allows only one concurrent
// writer, and broadcasts arrive from more than one goroutine (frame
// processing plus the gallery save notification), so writes serialize
// on wmu.
type client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) write(ev event) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteJSON(ev)
}

// NewHub creates a Hub driving the given controller.
func NewHub(c Controller) *Hub {
	return &Hub{
		controller: c,
		clients:    make(map[*client]bool),
	}
}

// Event wire format. Fields are present per type; []byte payloads reach
// the client base64-encoded.
type event struct {
	Type string `json:"type"`

	Key          string  `json:"key,omitempty"`
	X            float64 `json:"x,omitempty"`
	Y            float64 `json:"y,omitempty"`
	TransitionMs int64   `json:"transition_ms,omitempty"`

	Visible *bool  `json:"visible,omitempty"`
	Text    string `json:"text,omitempty"`
	Level   string `json:"level,omitempty"`
	Active  *bool  `json:"active,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`

	Remaining *int   `json:"remaining,omitempty"`
	JPEG      []byte `json:"jpeg,omitempty"`
	PhotoID   string `json:"photo_id,omitempty"`
}

// Command wire format from the UI.
type command struct {
	Type   string        `json:"type"`
	Action string        `json:"action,omitempty"`
	Layout *layoutReport `json:"layout,omitempty"`
}

type layoutReport struct {
	View    sizeReport     `json:"view"`
	Mirror  bool           `json:"mirror"`
	Widgets []widgetReport `json:"widgets"`
	Buttons []buttonReport `json:"buttons"`
}

type sizeReport struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type widgetReport struct {
	Key string  `json:"key"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w"`
	H   float64 `json:"h"`
}

type buttonReport struct {
	Action  string  `json:"action"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	Enabled bool    `json:"enabled"`
}

// ServeHTTP handles WebSocket upgrade requests and runs the command
// read loop for the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	cl := &client{conn: conn}

	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, cl)
		h.mu.Unlock()
	}()

	for {
		var cmd command
		if err := conn.ReadJSON(&cmd); err != nil {
			break
		}
		h.handleCommand(cmd)
	}
}

// handleCommand routes one UI command into the engine. Malformed
// commands are logged and dropped; the connection stays up.
func (h *Hub) handleCommand(cmd command) {
	switch cmd.Type {
	case "action":
		a, ok := engine.ParseAction(cmd.Action)
		if !ok {
			log.Printf("unknown ui action: %q", cmd.Action)
			return
		}
		h.controller.Dispatch(a)

	case "layout":
		if cmd.Layout == nil {
			return
		}
		h.controller.UpdateLayout(toLayoutReport(cmd.Layout))

	default:
		log.Printf("unknown ui command: %q", cmd.Type)
	}
}

// toLayoutReport converts the wire layout into the engine's form.
// Buttons with unknown actions are dropped.
func toLayoutReport(r *layoutReport) engine.LayoutReport {
	report := engine.LayoutReport{
		View:   geom.Size{W: r.View.W, H: r.View.H},
		Mirror: r.Mirror,
	}

	for _, wgt := range r.Widgets {
		report.Widgets = append(report.Widgets, layout.Measured{
			Key:  wgt.Key,
			Rect: geom.Rect{X: wgt.X, Y: wgt.Y, W: wgt.W, H: wgt.H},
		})
	}

	for _, b := range r.Buttons {
		action, ok := engine.ParseAction(b.Action)
		if !ok {
			log.Printf("layout report references unknown action %q", b.Action)
			continue
		}
		report.Buttons = append(report.Buttons, engine.Button{
			Action:  action,
			Rect:    geom.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H},
			Enabled: b.Enabled,
		})
	}

	return report
}

// broadcast sends one event to every connected client.
func (h *Hub) broadcast(ev event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.clients {
		if err := cl.write(ev); err != nil {
			log.Printf("websocket write error: %v", err)
		}
	}
}

func boolPtr(b bool) *bool { return &b }

// WidgetMoved publishes a widget placement to the UIs.
func (h *Hub) WidgetMoved(p layout.Placement) {
	h.broadcast(event{
		Type:         "widget_moved",
		Key:          p.Key,
		X:            p.Offset.X,
		Y:            p.Offset.Y,
		TransitionMs: p.Transition.Milliseconds(),
	})
}

// Pointer publishes the fingertip pointer position.
func (h *Hub) Pointer(visible bool, p geom.Point) {
	h.broadcast(event{Type: "pointer", Visible: boolPtr(visible), X: p.X, Y: p.Y})
}

// Status publishes a status line with severity.
func (h *Hub) Status(text string, level engine.StatusLevel) {
	h.broadcast(event{Type: "status", Text: text, Level: string(level)})
}

// ButtonActive publishes the pressed-button flash state.
func (h *Hub) ButtonActive(active bool) {
	h.broadcast(event{Type: "button_active", Active: boolPtr(active)})
}

// ModeChanged publishes a mode switch.
func (h *Hub) ModeChanged(m engine.Mode) {
	h.broadcast(event{Type: "mode", Mode: string(m)})
}

// EditChanged publishes the edit-layout toggle state.
func (h *Hub) EditChanged(enabled bool) {
	h.broadcast(event{Type: "edit", Enabled: boolPtr(enabled)})
}

// CountdownTick publishes the countdown step; zero hides the overlay.
func (h *Hub) CountdownTick(remaining int) {
	h.broadcast(event{Type: "countdown", Remaining: &remaining})
}

// PhotoPreview publishes or hides the captured-photo preview.
func (h *Hub) PhotoPreview(visible bool, jpeg []byte) {
	h.broadcast(event{Type: "photo_preview", Visible: boolPtr(visible), JPEG: jpeg})
}

// PhotoSaved announces a photo that landed in the gallery.
func (h *Hub) PhotoSaved(id string) {
	h.broadcast(event{Type: "photo_saved", PhotoID: id})
}
