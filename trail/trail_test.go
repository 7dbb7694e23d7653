package trail

import (
	"reflect"
	"testing"

	"github.com/seqsense/pcgol/mat"
)

func vecs(from, to int) []mat.Vec3 {
	var out []mat.Vec3
	for i := from; i < to; i++ {
		out = append(out, mat.Vec3{float32(i), float32(2 * i), float32(3 * i)})
	}
	return out
}

func TestBuffer_Append(t *testing.T) {
	testCases := map[string]struct {
		capacity int
		n        int
		expected []mat.Vec3
	}{
		"Empty": {
			capacity: 3,
			n:        0,
			expected: []mat.Vec3{},
		},
		"NotFull": {
			capacity: 4,
			n:        2,
			expected: vecs(0, 2),
		},
		"Full": {
			capacity: 3,
			n:        3,
			expected: vecs(0, 3),
		},
		"Wrapped": {
			capacity: 3,
			n:        7,
			expected: vecs(4, 7),
		},
		"Single": {
			capacity: 1,
			n:        5,
			expected: vecs(4, 5),
		},
		"ZeroCapacity": {
			capacity: 0,
			n:        2,
			expected: vecs(1, 2),
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			b := New(tt.capacity)
			for i, v := range vecs(0, tt.n) {
				b.Append(v)
				if b.Len() > b.Cap() {
					t.Fatalf("Len %d exceeds Cap %d after %d appends", b.Len(), b.Cap(), i+1)
				}
			}
			if out := b.Points(); !reflect.DeepEqual(tt.expected, out) {
				t.Errorf("Expected:\n%v\nGot:\n%v", tt.expected, out)
			}
			for i, e := range tt.expected {
				if v := b.At(i); !v.Equal(e) {
					t.Errorf("Expected At(%d): %v, got: %v", i, e, v)
				}
			}
		})
	}
}

func TestBuffer_Resize(t *testing.T) {
	testCases := map[string]struct {
		capacity int
		n        int
		resize   int
		expected []mat.Vec3
		cap      int
	}{
		"Grow": {
			capacity: 3,
			n:        5,
			resize:   6,
			expected: vecs(2, 5),
			cap:      6,
		},
		"SameAsLen": {
			capacity: 4,
			n:        3,
			resize:   3,
			expected: vecs(0, 3),
			cap:      3,
		},
		"ShrinkKeepsNewest": {
			capacity: 5,
			n:        9,
			resize:   2,
			expected: vecs(7, 9),
			cap:      2,
		},
		"ClampedToOne": {
			capacity: 4,
			n:        4,
			resize:   0,
			expected: vecs(3, 4),
			cap:      1,
		},
		"NegativeClamped": {
			capacity: 4,
			n:        2,
			resize:   -3,
			expected: vecs(1, 2),
			cap:      1,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			b := New(tt.capacity)
			for _, v := range vecs(0, tt.n) {
				b.Append(v)
			}
			b.Resize(tt.resize)
			if b.Cap() != tt.cap {
				t.Errorf("Expected Cap %d, got %d", tt.cap, b.Cap())
			}
			if out := b.Points(); !reflect.DeepEqual(tt.expected, out) {
				t.Errorf("Expected:\n%v\nGot:\n%v", tt.expected, out)
			}
		})
	}
}

func TestBuffer_AppendAfterResize(t *testing.T) {
	b := New(3)
	for _, v := range vecs(0, 5) {
		b.Append(v)
	}
	b.Resize(4)
	for _, v := range vecs(5, 7) {
		b.Append(v)
	}
	if out, expected := b.Points(), vecs(3, 7); !reflect.DeepEqual(expected, out) {
		t.Errorf("Expected:\n%v\nGot:\n%v", expected, out)
	}
	last, ok := b.Last()
	if !ok || !last.Equal(vecs(6, 7)[0]) {
		t.Errorf("Unexpected last point %v (%v)", last, ok)
	}
}

func TestBuffer_CapacityRoundTrip(t *testing.T) {
	b := New(3)
	for _, v := range vecs(0, 10) {
		b.Append(v)
	}
	b.Resize(b.Cap() * 2)
	b.Append(mat.Vec3{100, 100, 100})
	b.Resize(b.Cap() / 2)
	if b.Cap() != 3 {
		t.Errorf("Capacity must round-trip to 3, got %d", b.Cap())
	}
	if b.Len() != 3 {
		t.Errorf("Expected 3 points, got %d", b.Len())
	}
}

func TestBuffer_LargeCapacity(t *testing.T) {
	testCases := map[string]struct {
		initial int
		resize  int
		n       int
	}{
		"New":            {initial: 1 << 40, resize: 0, n: 5},
		"ResizeGrow":     {initial: 3, resize: 1 << 40, n: 5},
		"ResizeAfterAll": {initial: 8, resize: 1 << 50, n: 8},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			b := New(tt.initial)
			for _, v := range vecs(0, tt.n) {
				b.Append(v)
			}
			want := tt.initial
			if tt.resize > 0 {
				b.Resize(tt.resize)
				want = tt.resize
			}
			if b.Cap() != want {
				t.Errorf("Expected Cap %d, got %d", want, b.Cap())
			}
			if cap(b.data) > 64 {
				t.Errorf("Storage must follow the held points, got %d slots for %d points", cap(b.data), b.Len())
			}
			b.Append(mat.Vec3{100, 100, 100})
			if b.Len() != min(tt.n, tt.initial)+1 {
				t.Errorf("Expected %d points, got %d", min(tt.n, tt.initial)+1, b.Len())
			}
		})
	}
}

func TestBuffer_Reset(t *testing.T) {
	b := New(2)
	b.Append(mat.Vec3{1, 2, 3})
	b.Reset()
	if b.Len() != 0 || b.Cap() != 2 {
		t.Errorf("Unexpected Len %d / Cap %d after Reset", b.Len(), b.Cap())
	}
	if _, ok := b.Last(); ok {
		t.Error("Empty buffer must not have a last point")
	}
}
