// Package trail keeps a bounded history of recent marker positions.
package trail

import (
	"github.com/seqsense/pcgol/mat"
)

// Buffer is a bounded FIFO of points.
// When full, appending a point evicts the oldest one. Storage grows with the
// points held, not with the capacity.
// Buffer is not safe for concurrent use.
type Buffer struct {
	data     []mat.Vec3
	head     int // index of the oldest point once data is full
	capacity int
}

// New returns an empty Buffer holding up to capacity points.
// Capacity smaller than 1 is treated as 1.
func New(capacity int) *Buffer {
	return &Buffer{capacity: max(capacity, 1)}
}

func (b *Buffer) Len() int {
	return len(b.data)
}

func (b *Buffer) Cap() int {
	return b.capacity
}

// Append inserts p as the newest point.
func (b *Buffer) Append(p mat.Vec3) {
	if len(b.data) < b.capacity {
		b.data = append(b.data, p)
		return
	}
	b.data[b.head] = p
	b.head = (b.head + 1) % len(b.data)
}

// At returns the i-th point counted from the oldest one.
func (b *Buffer) At(i int) mat.Vec3 {
	if i < 0 || i >= len(b.data) {
		panic("trail: index out of range")
	}
	return b.data[(b.head+i)%len(b.data)]
}

// Last returns the newest point.
func (b *Buffer) Last() (mat.Vec3, bool) {
	if len(b.data) == 0 {
		return mat.Vec3{}, false
	}
	return b.At(len(b.data) - 1), true
}

// Points returns a copy of the buffered points, oldest first.
func (b *Buffer) Points() []mat.Vec3 {
	out := make([]mat.Vec3, 0, len(b.data))
	out = append(out, b.data[b.head:]...)
	return append(out, b.data[:b.head]...)
}

// Resize changes the capacity, keeping the most recent
// min(capacity, Len()) points in order.
func (b *Buffer) Resize(capacity int) {
	capacity = max(capacity, 1)
	pp := b.Points()
	if len(pp) > capacity {
		pp = pp[len(pp)-capacity:]
	}
	b.data = pp
	b.head = 0
	b.capacity = capacity
}

// Reset drops all points and keeps the capacity.
func (b *Buffer) Reset() {
	b.data = nil
	b.head = 0
}
