package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// PresenceDetector notices a person stepping in front of the mirror by
// frame differencing. It runs while the pipeline idles at low FPS, so a
// viewer wakes the camera before the hand tracker has anything to say.
type PresenceDetector struct {
	minChange   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

const (
	// presenceBlurSize is the Gaussian kernel used to wash out sensor noise.
	presenceBlurSize = 21
	// presenceDiffThreshold is the per-pixel difference that counts as change.
	presenceDiffThreshold = 25
)

// NewPresenceDetector creates a detector that reports presence when at
// least minChange percent of pixels changed between consecutive frames.
func NewPresenceDetector(minChange float64) *PresenceDetector {
	return &PresenceDetector{
		minChange: minChange,
		prevGray:  gocv.NewMat(),
	}
}

// Observe compares a frame against the previous one and reports whether
// someone is moving in view. The first frame only seeds the baseline.
func (p *PresenceDetector) Observe(frame *gocv.Mat) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: presenceBlurSize, Y: presenceBlurSize}, 0, 0, gocv.BorderDefault)

	if !p.initialized {
		blurred.CopyTo(&p.prevGray)
		p.initialized = true
		return false
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, p.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, presenceDiffThreshold, 255, gocv.ThresholdBinary)

	changed := gocv.CountNonZero(thresh)
	total := thresh.Rows() * thresh.Cols()

	blurred.CopyTo(&p.prevGray)

	if total == 0 {
		return false
	}
	percent := float64(changed) / float64(total) * 100.0
	return percent > p.minChange
}

// Reset drops the baseline so the next frame seeds a fresh one. Called
// when the camera resolution or FPS changes.
func (p *PresenceDetector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.prevGray.Empty() {
		p.prevGray.Close()
		p.prevGray = gocv.NewMat()
	}
	p.initialized = false
}

// Close releases the baseline frame.
func (p *PresenceDetector) Close() {
	p.Reset()
}
