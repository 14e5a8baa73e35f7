package app

import (
	"log"
	"time"
)

// runPipeline is the main loop feeding camera frames through the hand
// tracker into the gesture engine.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS), watching for presence only
// 2. On presence, switch to active mode (ActiveFPS) and start tracking
// 3. Run hand detection and feed every observation to the engine
// 4. After 2s without hands, drop back to idle mode
//
// The stop channel is passed in rather than re-read from the App: Stop
// nils the field, and a loop iteration racing that write must still see
// the channel it was started with.
func (a *App) runPipeline(stop <-chan struct{}) {
	activeMode := false
	lastHands := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				a.engine.Warn("Camera unavailable")
				continue
			}

			if !activeMode {
				if !a.presence.Observe(frame) {
					frame.Close()
					continue
				}

				activeMode = true
				lastHands = time.Now()
				a.camera.SetFPS(ActiveFPS)
				frameInterval = time.Second / time.Duration(ActiveFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to active mode")
			}

			hands, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				a.engine.Warn("Hand tracking unavailable")
				continue
			}

			a.engine.ProcessFrame(hands)

			if len(hands) > 0 {
				lastHands = time.Now()
				continue
			}

			if time.Since(lastHands) > time.Duration(IdleTimeoutMs)*time.Millisecond {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				a.presence.Reset()
				log.Println("Switched to idle mode")
			}
		}
	}
}
