package viewer

import (
	"math"
	"time"
)

const (
	// Events ignored before the zoom trusts its device guess.
	wheelWarmup = 5
	// Same-magnitude deltas needed to call a device notched.
	notchRun = 5
	// Peak rate (|delta|/s) assumed right after the device guess changes.
	initialPeakRate = 10
	// Zoom steps produced by a smooth delta matching the peak rate over
	// one sampling window.
	smoothStepScale = 250
	maxSampleWindow = 100 * time.Millisecond
)

// wheelZoom turns raw wheel deltas into zoom steps for Camera.Zoom.
//
// A device repeating the same magnitude is a notched mouse wheel and gives
// one step per notch whatever its resolution. Other devices (touchpads,
// pinch gestures) are scaled by their recent peak rate, so a fast swipe
// zooms by a few steps and a slow one by a fraction of a step.
type wheelZoom struct {
	events int

	notch    float64 // magnitude of the last delta
	repeated int     // deltas in a row with that magnitude
	notched  bool

	peakRate float64
	sampled  time.Time
	pending  float64 // delta accumulated since sampled

	now func() time.Time
}

func newWheelZoom() *wheelZoom {
	return &wheelZoom{now: time.Now}
}

// Steps returns the zoom steps for delta d. ok is false until enough
// events have been seen to tell notched from smooth devices.
func (z *wheelZoom) Steps(d float64) (steps float64, ok bool) {
	ok = z.events >= wheelWarmup
	if !ok {
		z.events++
	}
	a := math.Abs(d)
	if a == 0 {
		return 0, ok
	}

	if a == z.notch {
		z.repeated++
	} else {
		// A new magnitude restarts detection. A notched wheel changing its
		// notch size is treated as a new device.
		z.notch, z.repeated = a, 0
	}
	if notched := z.repeated >= notchRun; notched != z.notched || z.peakRate == 0 {
		z.notched = notched
		z.peakRate = initialPeakRate
	}
	z.sample(d)

	if z.notched {
		return math.Copysign(1, d), ok
	}
	return d * smoothStepScale / z.peakRate, ok
}

// sample updates the low-pass filtered peak rate. Deltas arriving at the
// same instant are summed into the next sample.
func (z *wheelZoom) sample(d float64) {
	z.pending += d
	now := z.now()
	dt := now.Sub(z.sampled)
	if dt <= 0 {
		return
	}
	rate := math.Abs(z.pending) / min(dt, maxSampleWindow).Seconds()
	z.pending = 0
	z.sampled = now

	if rate > z.peakRate {
		z.peakRate = (z.peakRate + rate) / 2
	}
	z.peakRate = max(z.peakRate*0.95, 1)
}
