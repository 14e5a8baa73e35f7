package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	// Create test frames
	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	// Read both frames
	f1, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	f1.Close()

	f2, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	f2.Close()

	// Third read should fail (no loop)
	_, err = cam.ReadFrame()
	if err == nil {
		t.Error("expected error after all frames consumed")
	}
}

func TestMockCamera_Loop(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, true)
	cam.Open()
	defer cam.Close()

	// Should loop indefinitely
	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error = %v", i, err)
		}
		f.Close()
	}
}

func TestMockCamera_Stills(t *testing.T) {
	cam := NewMockCamera(nil, false)
	cam.Open()
	defer cam.Close()

	_, err := cam.CaptureStill()
	if err == nil {
		t.Error("expected error with no canned stills")
	}

	cam.SetStills([][]byte{[]byte("first"), []byte("second")})

	s1, err := cam.CaptureStill()
	if err != nil {
		t.Fatalf("CaptureStill() error = %v", err)
	}
	if string(s1) != "first" {
		t.Errorf("still = %q, want first", s1)
	}

	s2, _ := cam.CaptureStill()
	if string(s2) != "second" {
		t.Errorf("still = %q, want second", s2)
	}

	// The last still repeats.
	s3, _ := cam.CaptureStill()
	if string(s3) != "second" {
		t.Errorf("still = %q, want second (last repeats)", s3)
	}
}

func TestMockCamera_FPSAndMirror(t *testing.T) {
	cam := NewMockCamera(nil, false)

	cam.SetFPS(7)
	if cam.FPS() != 7 {
		t.Errorf("FPS() = %d, want 7", cam.FPS())
	}
	cam.SetFPS(0)
	if cam.FPS() != 7 {
		t.Errorf("FPS() = %d, want unchanged 7", cam.FPS())
	}

	cam.SetMirror(true)
	if !cam.Mirror() {
		t.Error("Mirror() should reflect SetMirror")
	}
}
