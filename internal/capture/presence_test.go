package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func solidFrame(value uint8) gocv.Mat {
	mat := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	mat.SetTo(gocv.NewScalar(float64(value), float64(value), float64(value), 0))
	return mat
}

func TestPresenceDetector_FirstFrameSeedsBaseline(t *testing.T) {
	p := NewPresenceDetector(1.0)
	defer p.Close()

	frame := solidFrame(128)
	defer frame.Close()

	if p.Observe(&frame) {
		t.Error("first frame must only seed the baseline, not report presence")
	}
}

func TestPresenceDetector_StaticSceneIsQuiet(t *testing.T) {
	p := NewPresenceDetector(1.0)
	defer p.Close()

	a := solidFrame(128)
	defer a.Close()
	b := solidFrame(128)
	defer b.Close()

	p.Observe(&a)
	if p.Observe(&b) {
		t.Error("identical frames must not report presence")
	}
}

func TestPresenceDetector_LargeChangeReportsPresence(t *testing.T) {
	p := NewPresenceDetector(1.0)
	defer p.Close()

	dark := solidFrame(10)
	defer dark.Close()
	bright := solidFrame(200)
	defer bright.Close()

	p.Observe(&dark)
	if !p.Observe(&bright) {
		t.Error("a whole-frame change must report presence")
	}
}

func TestPresenceDetector_Reset(t *testing.T) {
	p := NewPresenceDetector(1.0)
	defer p.Close()

	dark := solidFrame(10)
	defer dark.Close()
	bright := solidFrame(200)
	defer bright.Close()

	p.Observe(&dark)
	p.Reset()

	// After a reset the bright frame is a baseline again.
	if p.Observe(&bright) {
		t.Error("frame after reset must only seed the baseline")
	}
}

func TestPresenceDetector_NilAndEmptyFrames(t *testing.T) {
	p := NewPresenceDetector(1.0)
	defer p.Close()

	if p.Observe(nil) {
		t.Error("nil frame must not report presence")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if p.Observe(&empty) {
		t.Error("empty frame must not report presence")
	}
}
