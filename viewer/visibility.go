package viewer

// Visibility holds a show/hide flag per marker. Every marker starts
// visible.
type Visibility struct {
	visible []bool
}

func NewVisibility(n int) *Visibility {
	v := &Visibility{visible: make([]bool, n)}
	for i := range v.visible {
		v.visible[i] = true
	}
	return v
}

func (v *Visibility) Len() int {
	return len(v.visible)
}

// Toggle flips marker i. It returns false and does nothing if i is out of
// range.
func (v *Visibility) Toggle(i int) bool {
	if i < 0 || i >= len(v.visible) {
		return false
	}
	v.visible[i] = !v.visible[i]
	return true
}

func (v *Visibility) Set(i int, visible bool) bool {
	if i < 0 || i >= len(v.visible) {
		return false
	}
	v.visible[i] = visible
	return true
}

func (v *Visibility) Visible(i int) bool {
	if i < 0 || i >= len(v.visible) {
		return false
	}
	return v.visible[i]
}

// Count returns the number of visible markers.
func (v *Visibility) Count() int {
	var n int
	for _, b := range v.visible {
		if b {
			n++
		}
	}
	return n
}
