// Package playback paces the intake of recorded frames.
package playback

import (
	"errors"

	"github.com/seqsense/pcgol/mat"
)

var (
	// ErrStreamExhausted is returned when a FrameSource has no further
	// frames. It ends one playback session.
	ErrStreamExhausted = errors.New("stream exhausted")

	// ErrInvalidFrameRate is returned when a source reports a non-positive
	// frame rate.
	ErrInvalidFrameRate = errors.New("invalid frame rate")
)

// Frame is one time sample of a recording.
type Frame struct {
	Index  int
	Points []mat.Vec3
	// Analog holds the auxiliary channel samples recorded with the frame.
	Analog []float32
}

// FrameSource supplies frames sequentially at a fixed nominal rate.
// Next returns ErrStreamExhausted, possibly wrapping the cause of an early
// end, once no frame remains. Sources are not restartable.
type FrameSource interface {
	Next() (*Frame, error)
	FrameRate() float64
	MarkerCount() int
}

// SliceSource is an in-memory FrameSource.
type SliceSource struct {
	Frames  []*Frame
	Rate    float64
	Markers int

	pos int
}

func (s *SliceSource) Next() (*Frame, error) {
	if s.pos >= len(s.Frames) {
		return nil, ErrStreamExhausted
	}
	f := s.Frames[s.pos]
	s.pos++
	return f, nil
}

func (s *SliceSource) FrameRate() float64 {
	return s.Rate
}

func (s *SliceSource) MarkerCount() int {
	return s.Markers
}
