package viewer

import (
	"errors"
	"testing"
)

func TestConsole(t *testing.T) {
	v, _ := newTestViewer(t, newSource(3, 3, 25))
	c := NewConsole(v)

	testCases := []struct {
		line     string
		expected string
		err      error
	}{
		{"", "", nil},
		{"maxlen", "1.000", nil},
		{"maxlen 16", "16.000", nil},
		{"maxlen 0", "1.000", nil},
		{"maxlen 1 2", "", errArgumentNumber},
		{"toggle 1", "1.000 0.000", nil},
		{"toggle 5", "", errMarkerIndex},
		{"hide 0", "0.000 0.000", nil},
		{"show 1", "1.000 1.000", nil},
		{"visible", "0.000 0.000\n1.000 1.000\n2.000 1.000", nil},
		{"camera", "350.000 300.000 1.000", nil},
		{"camera 10 20 2", "10.000 20.000 2.000", nil},
		{"camera 10 20", "", errArgumentNumber},
		{"reset", "350.000 300.000 1.000", nil},
		{"fps", "25.000", nil},
		{"markers", "", nil},
		{"pause", "1.000", nil},
		{"pause", "0.000", nil},
		{"lines", "1.000", nil},
		{"rewind", "", errInvalidCommand},
	}
	for _, tt := range testCases {
		out, err := c.Run(tt.line)
		if !errors.Is(err, tt.err) {
			t.Errorf("%q: expected error %v, got %v", tt.line, tt.err, err)
			continue
		}
		if out != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.line, tt.expected, out)
		}
	}

	if err := v.Idle(); err != nil {
		t.Fatal(err)
	}
	out, err := c.Run("markers")
	if err != nil {
		t.Fatal(err)
	}
	if expected := "0.000 0.000 0.000 0.000\n1.000 0.000 1.000 0.000\n2.000 0.000 2.000 0.000"; out != expected {
		t.Errorf("Expected %q, got %q", expected, out)
	}
}

func TestVisibility(t *testing.T) {
	v := NewVisibility(3)
	if v.Count() != 3 {
		t.Fatalf("All markers must start visible, got %d", v.Count())
	}
	for _, i := range []int{-1, 3, 10} {
		if v.Toggle(i) || v.Set(i, false) || v.Visible(i) {
			t.Errorf("Index %d is out of range", i)
		}
	}
	if !v.Toggle(2) || v.Visible(2) || v.Count() != 2 {
		t.Error("Toggle must hide marker 2")
	}
	if !v.Toggle(2) || !v.Visible(2) {
		t.Error("Toggle must show marker 2 again")
	}
}
