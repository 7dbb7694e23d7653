// Package c3d reads motion capture recordings in the C3D format.
package c3d

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/seqsense/pcgol/mat"
)

const blockSize = 512

// Processor is the processor type the file was written on.
type Processor int8

const (
	Intel Processor = 84
	DEC   Processor = 85
	MIPS  Processor = 86
)

func (p Processor) String() string {
	switch p {
	case Intel:
		return "Intel"
	case DEC:
		return "DEC"
	case MIPS:
		return "MIPS"
	}
	return fmt.Sprintf("Processor(%d)", int8(p))
}

var (
	ErrFormat    = errors.New("c3d: invalid format")
	ErrProcessor = errors.New("c3d: unsupported processor type")
)

// Header is the first block of a C3D file.
type Header struct {
	ParamBlock     int
	PointCount     int
	AnalogCount    int // analog samples stored per 3D frame, all channels
	FirstFrame     int
	LastFrame      int
	MaxGap         int
	ScaleFactor    float32
	DataBlock      int
	AnalogPerFrame int
	FrameRate      float32
}

// Point is one 3D sample.
type Point struct {
	Pos      mat.Vec3
	Residual float32
	Cameras  uint8
}

// Valid reports whether the sample was reconstructed.
func (p Point) Valid() bool {
	return p.Residual >= 0
}

type Frame struct {
	Index  int
	Points []Point
	// Analog holds AnalogPerFrame samples of every channel, sample-major.
	Analog []float32
}

// Reader decodes the frames of a C3D stream sequentially.
type Reader struct {
	Header
	Processor Processor
	Groups    map[string]*Group

	order        binary.ByteOrder
	r            *bufio.Reader
	frame        int
	buf          []byte
	analogScale  []float32
	analogOffset []float32
}

// NewReader parses the header and parameter section of r and positions it
// at the first frame.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	hdr := make([]byte, blockSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrFormat, err)
	}
	if hdr[1] != 0x50 {
		return nil, fmt.Errorf("%w: bad header key 0x%02x", ErrFormat, hdr[1])
	}
	paramBlock := int(hdr[0])
	if paramBlock < 2 {
		return nil, fmt.Errorf("%w: parameter block %d", ErrFormat, paramBlock)
	}
	if _, err := r.Seek(int64(paramBlock-1)*blockSize, io.SeekStart); err != nil {
		return nil, err
	}
	ph := make([]byte, 4)
	if _, err := io.ReadFull(r, ph); err != nil {
		return nil, fmt.Errorf("%w: reading parameter header: %v", ErrFormat, err)
	}
	proc := Processor(int8(ph[3]))
	var order binary.ByteOrder
	switch proc {
	case Intel, DEC:
		order = binary.LittleEndian
	case MIPS:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: %v", ErrProcessor, proc)
	}
	nBlocks := int(ph[2])
	if nBlocks < 1 {
		nBlocks = 1
	}
	pbuf := make([]byte, nBlocks*blockSize-4)
	if _, err := io.ReadFull(r, pbuf); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: reading parameters: %v", ErrFormat, err)
	}
	groups, err := parseParams(pbuf, proc, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	c := &Reader{
		Processor: proc,
		Groups:    groups,
		order:     order,
	}
	c.Header = Header{
		ParamBlock:     paramBlock,
		PointCount:     int(order.Uint16(hdr[2:])),
		AnalogCount:    int(order.Uint16(hdr[4:])),
		FirstFrame:     int(order.Uint16(hdr[6:])),
		LastFrame:      int(order.Uint16(hdr[8:])),
		MaxGap:         int(order.Uint16(hdr[10:])),
		ScaleFactor:    decodeFloat(proc, hdr[12:]),
		DataBlock:      int(order.Uint16(hdr[16:])),
		AnalogPerFrame: int(order.Uint16(hdr[18:])),
		FrameRate:      decodeFloat(proc, hdr[20:]),
	}
	c.applyParams()

	if c.DataBlock < 1 {
		return nil, fmt.Errorf("%w: data block %d", ErrFormat, c.DataBlock)
	}
	if _, err := r.Seek(int64(c.DataBlock-1)*blockSize, io.SeekStart); err != nil {
		return nil, err
	}
	c.r = bufio.NewReader(r)
	c.buf = make([]byte, c.frameSize())
	return c, nil
}

func (c *Reader) applyParams() {
	if p, ok := c.Param("POINT:USED"); ok {
		if v, err := p.Int(); err == nil && v >= 0 {
			c.PointCount = int(uint16(v))
		}
	}
	if p, ok := c.Param("POINT:RATE"); ok {
		if v, err := p.Float32(); err == nil && v > 0 {
			c.FrameRate = v
		}
	}
	if p, ok := c.Param("POINT:SCALE"); ok {
		if v, err := p.Float32(); err == nil && v != 0 {
			c.ScaleFactor = v
		}
	}
	if p, ok := c.Param("POINT:DATA_START"); ok {
		if v, err := p.Int(); err == nil && v > 0 {
			c.DataBlock = int(uint16(v))
		}
	}

	n := c.AnalogChannels()
	c.analogScale = make([]float32, n)
	c.analogOffset = make([]float32, n)
	gen := float32(1)
	if p, ok := c.Param("ANALOG:GEN_SCALE"); ok {
		if v, err := p.Float32(); err == nil {
			gen = v
		}
	}
	var scales, offsets []float32
	if p, ok := c.Param("ANALOG:SCALE"); ok {
		scales, _ = p.Float32s()
	}
	if p, ok := c.Param("ANALOG:OFFSET"); ok {
		offsets, _ = p.Float32s()
	}
	for i := 0; i < n; i++ {
		c.analogScale[i] = gen
		if i < len(scales) {
			c.analogScale[i] = gen * scales[i]
		}
		if i < len(offsets) {
			c.analogOffset[i] = offsets[i]
		}
	}
}

// Param looks up a parameter by "GROUP:NAME".
func (c *Reader) Param(key string) (*Param, bool) {
	gname, pname, ok := strings.Cut(strings.ToUpper(key), ":")
	if !ok {
		return nil, false
	}
	g, ok := c.Groups[gname]
	if !ok {
		return nil, false
	}
	return g.Param(pname)
}

// Labels returns the POINT:LABELS entries, if any.
func (c *Reader) Labels() []string {
	p, ok := c.Param("POINT:LABELS")
	if !ok {
		return nil
	}
	l, _ := p.Strings()
	return l
}

// Units returns the POINT:UNITS value, if any.
func (c *Reader) Units() string {
	p, ok := c.Param("POINT:UNITS")
	if !ok {
		return ""
	}
	u, _ := p.Strings()
	if len(u) == 0 {
		return ""
	}
	return u[0]
}

// AnalogChannels returns the number of analog channels.
func (c *Reader) AnalogChannels() int {
	if p, ok := c.Param("ANALOG:USED"); ok {
		if v, err := p.Int(); err == nil && v >= 0 {
			return v
		}
	}
	if c.AnalogPerFrame > 0 {
		return c.AnalogCount / c.AnalogPerFrame
	}
	return 0
}

// FrameCount returns the number of frames declared in the header.
func (c *Reader) FrameCount() int {
	if c.LastFrame < c.FirstFrame {
		return 0
	}
	return c.LastFrame - c.FirstFrame + 1
}

func (c *Reader) isFloat() bool {
	return c.ScaleFactor < 0
}

func (c *Reader) valueSize() int {
	if c.isFloat() {
		return 4
	}
	return 2
}

func (c *Reader) frameSize() int {
	return c.valueSize() * (4*c.PointCount + c.AnalogCount)
}

func (c *Reader) value(b []byte) float32 {
	if c.isFloat() {
		return decodeFloat(c.Processor, b)
	}
	return float32(int16(c.order.Uint16(b)))
}

// ReadFrame decodes the next frame. It returns io.EOF after the last
// declared frame and io.ErrUnexpectedEOF on a truncated frame.
func (c *Reader) ReadFrame() (*Frame, error) {
	if c.frame >= c.FrameCount() {
		return nil, io.EOF
	}
	if _, err := io.ReadFull(c.r, c.buf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	f := &Frame{
		Index:  c.FirstFrame + c.frame,
		Points: make([]Point, c.PointCount),
	}
	scale := float32(math.Abs(float64(c.ScaleFactor)))
	vs := c.valueSize()
	o := 0
	for i := range f.Points {
		x := c.value(c.buf[o:])
		y := c.value(c.buf[o+vs:])
		z := c.value(c.buf[o+2*vs:])
		w := c.value(c.buf[o+3*vs:])
		o += 4 * vs

		p := &f.Points[i]
		if c.isFloat() {
			p.Pos = mat.Vec3{x, y, z}
		} else {
			p.Pos = mat.Vec3{x * scale, y * scale, z * scale}
		}
		rw := int16(w)
		if rw < 0 {
			p.Residual = -1
			continue
		}
		p.Cameras = uint8(uint16(rw) >> 8)
		p.Residual = float32(rw&0xff) * scale
	}

	if c.AnalogCount > 0 {
		f.Analog = make([]float32, c.AnalogCount)
		n := len(c.analogScale)
		for i := range f.Analog {
			v := c.value(c.buf[o:])
			o += vs
			if n > 0 {
				ch := i % n
				v = (v - c.analogOffset[ch]) * c.analogScale[ch]
			}
			f.Analog[i] = v
		}
	}
	c.frame++
	return f, nil
}

// decodeFloat reads a 32 bit float in the processor's representation.
func decodeFloat(p Processor, b []byte) float32 {
	switch p {
	case MIPS:
		return math.Float32frombits(binary.BigEndian.Uint32(b))
	case DEC:
		// DEC F_floating: 16 bit words swapped and exponent biased by 2
		// compared to IEEE single precision.
		u := uint32(b[2]) | uint32(b[3])<<8 | uint32(b[0])<<16 | uint32(b[1])<<24
		if u == 0 {
			return 0
		}
		return math.Float32frombits(u) / 4
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
