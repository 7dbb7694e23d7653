package recording

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/seqsense/c3dview/playback"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type files map[string][]byte

func (f files) read(p string) ([]byte, error) {
	b, ok := f[p]
	if !ok {
		return nil, os.ErrNotExist
	}
	return b, nil
}

func marshalPCD(t *testing.T, width int, vecs []mat.Vec3) []byte {
	t.Helper()
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version: 0.7,
			Fields:  []string{"x", "y", "z"},
			Size:    []int{4, 4, 4},
			Type:    []string{"F", "F", "F"},
			Count:   []int{1, 1, 1},
			Width:   width,
			Height:  len(vecs) / width,
		},
		Points: len(vecs),
	}
	pp.Data = make([]byte, len(vecs)*pp.Stride())
	it, err := pp.Vec3Iterator()
	require.NoError(t, err)
	for _, v := range vecs {
		it.SetVec3(v)
		it.Incr()
	}
	var buf bytes.Buffer
	require.NoError(t, pc.Marshal(pp, &buf))
	return buf.Bytes()
}

// c3dFile builds an Intel, float format file without parameters.
func c3dFile(points int, rate float32, frames [][]float32) []byte {
	le := binary.LittleEndian
	b := make([]byte, 1024)
	b[0] = 2
	b[1] = 0x50
	le.PutUint16(b[2:], uint16(points))
	le.PutUint16(b[6:], 1)
	le.PutUint16(b[8:], uint16(len(frames)))
	le.PutUint32(b[12:], math.Float32bits(-1))
	le.PutUint16(b[16:], 3)
	le.PutUint32(b[20:], math.Float32bits(rate))
	copy(b[512:], []byte{0x01, 0x50, 1, 84})
	for _, f := range frames {
		for _, v := range f {
			b = le.AppendUint32(b, math.Float32bits(v))
		}
	}
	return b
}

func drain(t *testing.T, s playback.FrameSource) [][]mat.Vec3 {
	t.Helper()
	var out [][]mat.Vec3
	for {
		f, err := s.Next()
		if errors.Is(err, playback.ErrStreamExhausted) {
			return out
		}
		require.NoError(t, err)
		out = append(out, f.Points)
	}
}

func TestOpen_PCD(t *testing.T) {
	fs := files{
		"data/walk.yaml": []byte(`pointcloud: walk.pcd
frame_rate: 100
labels: [head, hand]
`),
		"data/walk.pcd": marshalPCD(t, 2, []mat.Vec3{
			{1, 2, 3}, {4, 5, 6},
			{7, 8, 9}, {10, 11, 12},
		}),
	}
	r, err := Open("data/walk.yaml", fs.read)
	require.NoError(t, err)

	assert.Equal(t, 100.0, r.FrameRate())
	assert.Equal(t, 2, r.MarkerCount())
	assert.Equal(t, 2, r.FrameCount())
	assert.Equal(t, []string{"head", "hand"}, r.Labels())
	assert.Equal(t, [][]mat.Vec3{
		{{1, 2, 3}, {4, 5, 6}},
		{{7, 8, 9}, {10, 11, 12}},
	}, drain(t, r))
}

func TestOpen_PCDMarkers(t *testing.T) {
	fs := files{
		"a.yml": []byte("pointcloud: /abs/a.pcd\nframe_rate: 30\nmarkers: 3\n"),
		"/abs/a.pcd": marshalPCD(t, 6, []mat.Vec3{
			{1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}, {5, 0, 0}, {6, 0, 0},
		}),
	}
	r, err := Open("a.yml", fs.read)
	require.NoError(t, err)
	assert.Equal(t, 3, r.MarkerCount())
	assert.Len(t, drain(t, r), 2)

	fs["a.yml"] = []byte("pointcloud: /abs/a.pcd\nframe_rate: 30\nmarkers: 4\n")
	_, err = Open("a.yml", fs.read)
	assert.ErrorIs(t, err, errMarkerCount)
}

func TestOpen_C3D(t *testing.T) {
	fs := files{
		"trial.C3D": c3dFile(2, 50, [][]float32{
			{1, 2, 3, 0, 4, 5, 6, 0},
			{7, 8, 9, 0, 1, 1, 1, -1},
		}),
	}
	r, err := Open("trial.C3D", fs.read)
	require.NoError(t, err)

	assert.Equal(t, 50.0, r.FrameRate())
	assert.Equal(t, 2, r.MarkerCount())
	assert.Equal(t, 2, r.FrameCount())
	assert.Empty(t, r.Labels())
	assert.Equal(t, [][]mat.Vec3{
		{{1, 2, 3}, {4, 5, 6}},
		{{7, 8, 9}, {1, 1, 1}},
	}, drain(t, r))
}

func TestOpen_C3DTruncated(t *testing.T) {
	b := c3dFile(1, 10, [][]float32{{1, 2, 3, 0}, {4, 5, 6, 0}})
	r, err := Open("t.c3d", files{"t.c3d": b[:len(b)-4]}.read)
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, playback.ErrStreamExhausted)
}

func TestOpen_Errors(t *testing.T) {
	fs := files{"bad.yaml": []byte("pointcloud: [")}

	_, err := Open("rec.txt", fs.read)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Open("missing.c3d", fs.read)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open("bad.yaml", fs.read)
	assert.Error(t, err)
}
