package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenHandLandmarks returns a preset hand with all fingers extended:
// no pinch, no thumb signal. Useful as a neutral observation.
func OpenHandLandmarks() HandLandmarks {
	h := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Thumb extended to the side.
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward.
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	// Middle finger extended upward.
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	// Ring finger extended upward.
	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	h.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.35}

	// Pinky finger extended upward.
	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	h.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60}
	h.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50}
	h.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42}

	return h
}

// PinchingHandLandmarks returns a hand whose wrist-to-knuckle span and
// thumb-to-index pinch distance are exactly the given values, with the
// index fingertip at (0.5, 0.5). Tests use it to probe the pinch
// threshold precisely.
func PinchingHandLandmarks(span, pinch float64) HandLandmarks {
	h := OpenHandLandmarks()

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}
	h.Points[MiddleMCP] = Point3D{X: 0.5, Y: 0.8 - span}

	h.Points[IndexTip] = Point3D{X: 0.5, Y: 0.5}
	h.Points[ThumbTip] = Point3D{X: 0.5 + pinch, Y: 0.5}

	// Keep the rest of the thumb and index near the tips so the pose
	// looks like a pinch rather than an open palm.
	h.Points[ThumbIP] = Point3D{X: 0.5 + pinch + 0.02, Y: 0.55}
	h.Points[ThumbMCP] = Point3D{X: 0.52, Y: 0.65}
	h.Points[IndexDIP] = Point3D{X: 0.5, Y: 0.55}
	h.Points[IndexPIP] = Point3D{X: 0.5, Y: 0.62}
	h.Points[IndexMCP] = Point3D{X: 0.5, Y: 0.7}

	return h
}

// ThumbsUpLandmarks returns a preset hand signaling thumbs up: the
// thumb extended above both its base joint and the wrist, all other
// fingers folded with tips below their mid joints.
func ThumbsUpLandmarks() HandLandmarks {
	h := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Thumb extended upward (y decreases going up).
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65}
	h.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50}
	h.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35}

	// Index finger curled: tip below the PIP joint.
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	h.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	h.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	h.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	// Middle finger curled.
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	h.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	h.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	// Ring finger curled.
	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	h.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	h.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	// Pinky finger curled.
	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	h.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	h.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	h.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}

	return h
}

// ThumbsDownLandmarks returns a preset hand signaling thumbs down: the
// thumb extended below both its base joint and the wrist, all other
// fingers folded.
func ThumbsDownLandmarks() HandLandmarks {
	h := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.40}

	// Thumb extended downward.
	h.Points[ThumbCMC] = Point3D{X: 0.54, Y: 0.48}
	h.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.55}
	h.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.66}
	h.Points[ThumbTip] = Point3D{X: 0.56, Y: 0.76}

	// Remaining fingers curled into the palm, tips below the mid joints.
	h.Points[IndexMCP] = Point3D{X: 0.48, Y: 0.44, Z: -0.02}
	h.Points[IndexPIP] = Point3D{X: 0.48, Y: 0.45, Z: -0.05}
	h.Points[IndexDIP] = Point3D{X: 0.46, Y: 0.47, Z: -0.04}
	h.Points[IndexTip] = Point3D{X: 0.45, Y: 0.49, Z: -0.02}

	h.Points[MiddleMCP] = Point3D{X: 0.45, Y: 0.43, Z: -0.02}
	h.Points[MiddlePIP] = Point3D{X: 0.45, Y: 0.44, Z: -0.05}
	h.Points[MiddleDIP] = Point3D{X: 0.43, Y: 0.46, Z: -0.04}
	h.Points[MiddleTip] = Point3D{X: 0.42, Y: 0.48, Z: -0.02}

	h.Points[RingMCP] = Point3D{X: 0.42, Y: 0.44, Z: -0.02}
	h.Points[RingPIP] = Point3D{X: 0.42, Y: 0.45, Z: -0.05}
	h.Points[RingDIP] = Point3D{X: 0.40, Y: 0.47, Z: -0.04}
	h.Points[RingTip] = Point3D{X: 0.39, Y: 0.49, Z: -0.02}

	h.Points[PinkyMCP] = Point3D{X: 0.39, Y: 0.45, Z: -0.02}
	h.Points[PinkyPIP] = Point3D{X: 0.39, Y: 0.46, Z: -0.05}
	h.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.48, Z: -0.04}
	h.Points[PinkyTip] = Point3D{X: 0.36, Y: 0.50, Z: -0.02}

	return h
}
