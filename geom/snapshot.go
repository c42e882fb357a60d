package geom

// Snapshot is a copy of the stored geometry of some rectangles and
// everything below them, binding edges included. Restoring it puts the
// rectangles back exactly as they were, whatever happened in between.
type Snapshot struct {
	states []state
}

type state struct {
	rect                Rect
	x, y, width, height float64
	binding             *Binding
	// groups only
	children     []Rect
	bindings     []*Binding
	initialWidth float64
}

// Capture takes a snapshot of the rectangles and their descendants.
func Capture(rects ...Rect) Snapshot {
	var s Snapshot
	for _, r := range rects {
		for _, d := range Descendants(r) {
			b := d.base()
			st := state{rect: d, x: b.x, y: b.y, width: b.width, height: b.height, binding: b.binding}
			if g, ok := d.(*GroupRect); ok {
				st.children = append([]Rect(nil), g.children...)
				if g.bindings != nil {
					st.bindings = append([]*Binding{}, g.bindings...)
				}
				st.initialWidth = g.initialWidth
			}
			s.states = append(s.states, st)
		}
	}
	return s
}

// Restore writes the captured geometry back.
func (s Snapshot) Restore() {
	for _, st := range s.states {
		b := st.rect.base()
		b.x, b.y, b.width, b.height = st.x, st.y, st.width, st.height
		b.binding = st.binding
		if g, ok := st.rect.(*GroupRect); ok {
			g.children = append([]Rect(nil), st.children...)
			g.bindings = nil
			if st.bindings != nil {
				g.bindings = append([]*Binding{}, st.bindings...)
			}
			g.initialWidth = st.initialWidth
		}
	}
}
