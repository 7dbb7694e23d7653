package recording

import (
	"bytes"
	"errors"
	"fmt"
	"path"

	"github.com/seqsense/c3dview/playback"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"gopkg.in/yaml.v3"
)

var errMarkerCount = errors.New("invalid marker count")

// Meta is the YAML sidecar describing a point cloud recording.
// The cloud is frame-major: Markers points per frame.
type Meta struct {
	PointCloud string   `yaml:"pointcloud"`
	FrameRate  float64  `yaml:"frame_rate"`
	Markers    int      `yaml:"markers"`
	Labels     []string `yaml:"labels"`
}

type pcdSource struct {
	meta   Meta
	frames [][]mat.Vec3
	pos    int
}

func openPCD(yamlPath string, read ReadFunc) (*pcdSource, error) {
	b, err := read(yamlPath)
	if err != nil {
		return nil, err
	}
	m := Meta{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", yamlPath, err)
	}
	pcPath := m.PointCloud
	if !path.IsAbs(pcPath) {
		pcPath = path.Join(path.Dir(yamlPath), pcPath)
	}
	b, err = read(pcPath)
	if err != nil {
		return nil, err
	}
	pp, err := pc.Unmarshal(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pcPath, err)
	}
	return newPCDSource(m, pp)
}

func newPCDSource(m Meta, pp *pc.PointCloud) (*pcdSource, error) {
	if m.Markers == 0 {
		m.Markers = pp.Width
	}
	if m.Markers <= 0 || pp.Points%m.Markers != 0 {
		return nil, fmt.Errorf("%w: %d markers, %d points", errMarkerCount, m.Markers, pp.Points)
	}
	s := &pcdSource{meta: m}
	if pp.Points == 0 {
		return s, nil
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	s.frames = make([][]mat.Vec3, pp.Points/m.Markers)
	for i := range s.frames {
		f := make([]mat.Vec3, m.Markers)
		for j := range f {
			f[j] = it.Vec3()
			it.Incr()
		}
		s.frames[i] = f
	}
	return s, nil
}

func (s *pcdSource) Next() (*playback.Frame, error) {
	if s.pos >= len(s.frames) {
		return nil, playback.ErrStreamExhausted
	}
	f := &playback.Frame{Index: s.pos, Points: s.frames[s.pos]}
	s.pos++
	return f, nil
}

func (s *pcdSource) FrameRate() float64 {
	return s.meta.FrameRate
}

func (s *pcdSource) MarkerCount() int {
	return s.meta.Markers
}

func (s *pcdSource) Labels() []string {
	return s.meta.Labels
}

func (s *pcdSource) FrameCount() int {
	return len(s.frames)
}
