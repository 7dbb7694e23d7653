// Package recording opens marker recordings as playback frame sources.
package recording

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/seqsense/c3dview/playback"
)

var ErrUnknownFormat = errors.New("unknown recording format")

// ReadFunc returns the content of the file at the given path.
type ReadFunc func(path string) ([]byte, error)

// ReadFile reads from the local file system.
func ReadFile(p string) ([]byte, error) {
	return os.ReadFile(p)
}

// Recording is a FrameSource with some metadata about the recorded markers.
type Recording interface {
	playback.FrameSource
	// Labels returns the marker names, possibly empty.
	Labels() []string
	// FrameCount returns the number of frames, or -1 if unknown.
	FrameCount() int
}

// Open opens a recording by its file extension.
func Open(p string, read ReadFunc) (Recording, error) {
	var (
		r   Recording
		err error
	)
	switch strings.ToLower(path.Ext(p)) {
	case ".c3d":
		var b []byte
		if b, err = read(p); err == nil {
			r, err = newC3D(b)
		}
	case ".yaml", ".yml":
		r, err = openPCD(p, read)
	default:
		return nil, fmt.Errorf("%s: %w", p, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
