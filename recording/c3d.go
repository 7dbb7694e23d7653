package recording

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/seqsense/c3dview/c3d"
	"github.com/seqsense/c3dview/playback"
	"github.com/seqsense/pcgol/mat"
)

type c3dSource struct {
	r *c3d.Reader
}

func newC3D(b []byte) (*c3dSource, error) {
	r, err := c3d.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return &c3dSource{r: r}, nil
}

func (s *c3dSource) Next() (*playback.Frame, error) {
	f, err := s.r.ReadFrame()
	switch {
	case errors.Is(err, io.EOF):
		return nil, playback.ErrStreamExhausted
	case err != nil:
		return nil, fmt.Errorf("%w: %v", playback.ErrStreamExhausted, err)
	}
	pts := make([]mat.Vec3, len(f.Points))
	for i, p := range f.Points {
		pts[i] = p.Pos
	}
	return &playback.Frame{
		Index:  f.Index,
		Points: pts,
		Analog: f.Analog,
	}, nil
}

func (s *c3dSource) FrameRate() float64 {
	return float64(s.r.FrameRate)
}

func (s *c3dSource) MarkerCount() int {
	return s.r.PointCount
}

func (s *c3dSource) Labels() []string {
	return s.r.Labels()
}

func (s *c3dSource) FrameCount() int {
	return s.r.FrameCount()
}
