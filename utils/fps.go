package utils

import (
	"time"
)

// FPS accounts frame ticks and recomputes the frame rate once per
// calculation interval, keeping the worst frame of the closed interval.
type FPS struct {
	calculationInterval time.Duration

	currentFrameTick time.Time
	intervalStart    time.Time

	frameCount    int
	worstFrame    time.Duration
	framerate     float64
	worstFrameOut time.Duration

	now func() time.Time
}

func NewFPS(calculationInterval time.Duration) *FPS {
	return &FPS{
		calculationInterval: calculationInterval,
		now:                 time.Now,
	}
}

// Tick marks the start of a new frame and returns the time elapsed since
// the previous tick (zero on the first one). calculated reports that a
// calculation interval was closed and Framerate/WorstFrame were updated.
func (f *FPS) Tick() (elapsed time.Duration, calculated bool) {
	return f.tick(f.now())
}

func (f *FPS) tick(now time.Time) (elapsed time.Duration, calculated bool) {
	if f.currentFrameTick.IsZero() {
		f.currentFrameTick = now
		f.intervalStart = now
		return 0, false
	}

	elapsed = now.Sub(f.currentFrameTick)
	f.currentFrameTick = now

	f.frameCount++
	if elapsed > f.worstFrame {
		f.worstFrame = elapsed
	}

	if interval := now.Sub(f.intervalStart); interval >= f.calculationInterval {
		f.framerate = float64(f.frameCount) / interval.Seconds()
		f.worstFrameOut = f.worstFrame
		f.frameCount = 0
		f.worstFrame = 0
		f.intervalStart = now
		calculated = true
	}

	return elapsed, calculated
}

// Framerate returns the average frame rate of the last closed interval.
func (f *FPS) Framerate() float64 {
	return f.framerate
}

// WorstFrame returns the longest frame of the last closed interval.
func (f *FPS) WorstFrame() time.Duration {
	return f.worstFrameOut
}
