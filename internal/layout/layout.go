// Package layout tracks the movable overlay widgets: each widget has a
// base center (its natural position as rendered by the UI) plus a
// user-applied drag offset. On drag release the widget is aligned to
// nearby widget edges and quantized to a fixed grid.
package layout

import (
	"math"
	"time"

	"github.com/ayusman/mudra/internal/geom"
)

// Layout tuning constants.
const (
	// AlignTolerance is the maximum distance, in pixels, at which a
	// released widget is pulled into alignment with a sibling edge.
	AlignTolerance = 140.0

	// GridUnit is the snap grid size in pixels. Final drag offsets are
	// always exact multiples of this on both axes.
	GridUnit = 16.0

	// DragTransition is the transition applied while a widget tracks
	// the pointer during a drag.
	DragTransition = 80 * time.Millisecond

	// SnapTransition is the eased transition applied when a released
	// widget settles onto its snapped position.
	SnapTransition = 250 * time.Millisecond
)

// Widget is one movable overlay panel. Its on-screen center is always
// Base + Offset; Base is re-derived on layout changes so an existing
// Offset keeps its visual effect.
type Widget struct {
	Key    string
	Base   geom.Point
	Offset geom.Point
	Size   geom.Size
}

// Center returns the widget's current on-screen center.
func (w *Widget) Center() geom.Point {
	return w.Base.Add(w.Offset)
}

// Bounds returns the widget's current on-screen bounding box.
func (w *Widget) Bounds() geom.Rect {
	return geom.RectAround(w.Center(), w.Size)
}

// Measured is a widget rectangle as reported by the rendering layer,
// with any current offset already applied.
type Measured struct {
	Key  string
	Rect geom.Rect
}

// Placement describes a widget move for the rendering layer to apply.
type Placement struct {
	Key        string
	Offset     geom.Point
	Transition time.Duration
}

// Engine owns the widget set and implements drag positioning and the
// two-stage snap (alignment search, then grid quantization).
type Engine struct {
	widgets map[string]*Widget
	order   []string
}

// NewEngine creates an empty layout engine. Widgets are registered via
// Init from the first layout report.
func NewEngine() *Engine {
	return &Engine{widgets: make(map[string]*Widget)}
}

// Init (re)builds the widget set from renderer-measured rectangles.
// Known widgets keep their offset: the base center is recomputed as the
// measured center minus the existing offset, so a resize or layout
// change never visibly moves an already-dragged widget. Widgets absent
// from the report are dropped.
func (e *Engine) Init(measured []Measured) {
	seen := make(map[string]bool, len(measured))
	order := make([]string, 0, len(measured))

	for _, m := range measured {
		if m.Key == "" || seen[m.Key] {
			continue
		}
		seen[m.Key] = true
		order = append(order, m.Key)

		center := m.Rect.Center()
		if w, ok := e.widgets[m.Key]; ok {
			w.Base = center.Sub(w.Offset)
			w.Size = geom.Size{W: m.Rect.W, H: m.Rect.H}
			continue
		}
		e.widgets[m.Key] = &Widget{
			Key:  m.Key,
			Base: center,
			Size: geom.Size{W: m.Rect.W, H: m.Rect.H},
		}
	}

	for key := range e.widgets {
		if !seen[key] {
			delete(e.widgets, key)
		}
	}
	e.order = order
}

// Len returns the number of tracked widgets.
func (e *Engine) Len() int {
	return len(e.widgets)
}

// Widget returns the widget with the given key, or nil.
func (e *Engine) Widget(key string) *Widget {
	return e.widgets[key]
}

// HitTest returns the key of the first widget whose bounds contain p,
// in layout-report order.
func (e *Engine) HitTest(p geom.Point) (string, bool) {
	for _, key := range e.order {
		if e.widgets[key].Bounds().Contains(p) {
			return key, true
		}
	}
	return "", false
}

// SetPosition moves the widget so its center tracks p, recomputing the
// offset against the base center. Returns false for unknown keys.
func (e *Engine) SetPosition(key string, p geom.Point) (Placement, bool) {
	w, ok := e.widgets[key]
	if !ok {
		return Placement{}, false
	}
	w.Offset = p.Sub(w.Base)
	return Placement{Key: key, Offset: w.Offset, Transition: DragTransition}, true
}

// Snap settles a released widget in two stages. First it searches every
// other widget for the closest edge alignment per axis (leading edge,
// center, trailing edge) within AlignTolerance and shifts by that delta.
// Then it rounds the resulting offset on each axis to the nearest
// GridUnit multiple. Axes with no alignment candidate are only
// quantized. Returns false for unknown keys.
func (e *Engine) Snap(key string) (Placement, bool) {
	w, ok := e.widgets[key]
	if !ok {
		return Placement{}, false
	}

	bounds := w.Bounds()
	shiftX := e.alignShift(key, bounds, axisX)
	shiftY := e.alignShift(key, bounds, axisY)

	w.Offset = geom.Point{
		X: quantize(w.Offset.X + shiftX),
		Y: quantize(w.Offset.Y + shiftY),
	}
	return Placement{Key: key, Offset: w.Offset, Transition: SnapTransition}, true
}

// Reset clears every widget's offset, settling each back onto its base
// center with a snap transition. Base centers are untouched.
func (e *Engine) Reset() []Placement {
	placements := make([]Placement, 0, len(e.order))
	for _, key := range e.order {
		w := e.widgets[key]
		w.Offset = geom.Point{}
		placements = append(placements, Placement{
			Key:        key,
			Transition: SnapTransition,
		})
	}
	return placements
}

type axis int

const (
	axisX axis = iota
	axisY
)

// edges returns the leading edge, center and trailing edge coordinates
// of r along the given axis.
func edges(r geom.Rect, a axis) [3]float64 {
	if a == axisX {
		return [3]float64{r.X, r.Center().X, r.Right()}
	}
	return [3]float64{r.Y, r.Center().Y, r.Bottom()}
}

// alignShift finds the smallest misalignment between the widget's
// bounds and any sibling along one axis, comparing like edges (leading
// to leading, center to center, trailing to trailing). Returns 0 when
// nothing is within AlignTolerance.
func (e *Engine) alignShift(key string, bounds geom.Rect, a axis) float64 {
	own := edges(bounds, a)

	best := math.Inf(1)
	var shift float64
	for _, otherKey := range e.order {
		if otherKey == key {
			continue
		}
		other := edges(e.widgets[otherKey].Bounds(), a)
		for i := 0; i < 3; i++ {
			delta := other[i] - own[i]
			if d := math.Abs(delta); d <= AlignTolerance && d < best {
				best = d
				shift = delta
			}
		}
	}
	return shift
}

// quantize rounds v to the nearest multiple of GridUnit.
func quantize(v float64) float64 {
	return math.Round(v/GridUnit) * GridUnit
}
