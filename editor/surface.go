package editor

import (
	"github.com/vsariola/notecomp/geom"
	"golang.org/x/exp/slices"
)

// Surface is the ordered collection of everything drawn on the composition
// grid: note rectangles, groups and ghosts. Later nodes are drawn on top of
// earlier ones.
type Surface struct {
	nodes []geom.Node
}

func NewSurface() *Surface {
	return &Surface{}
}

// Nodes returns a copy of the nodes in drawing order.
func (s *Surface) Nodes() []geom.Node {
	return slices.Clone(s.nodes)
}

func (s *Surface) Len() int { return len(s.nodes) }

func (s *Surface) Add(nodes ...geom.Node) {
	s.nodes = append(s.nodes, nodes...)
}

// Insert puts the node at index i, clamped to the valid range.
func (s *Surface) Insert(i int, n geom.Node) {
	i = max(0, min(i, len(s.nodes)))
	s.nodes = slices.Insert(s.nodes, i, n)
}

// Remove removes the node and reports whether it was on the surface.
func (s *Surface) Remove(n geom.Node) bool {
	i := slices.Index(s.nodes, n)
	if i < 0 {
		return false
	}
	s.nodes[i] = nil
	s.nodes = slices.Delete(s.nodes, i, i+1)
	return true
}

// IndexOf returns the drawing index of the node, or -1.
func (s *Surface) IndexOf(n geom.Node) int {
	return slices.Index(s.nodes, n)
}

func (s *Surface) Contains(n geom.Node) bool {
	return slices.Contains(s.nodes, n)
}

func (s *Surface) Clear() {
	clear(s.nodes)
	s.nodes = s.nodes[:0]
}

// Rects returns every rectangle on the surface, nested ones included, in
// drawing order.
func (s *Surface) Rects() []geom.Rect {
	var ret []geom.Rect
	for _, n := range s.nodes {
		if r, ok := n.(geom.Rect); ok {
			ret = append(ret, r)
		}
	}
	return ret
}

// TopLevel returns the rectangles that are not bound to any group.
func (s *Surface) TopLevel() []geom.Rect {
	var ret []geom.Rect
	for _, n := range s.nodes {
		if r, ok := n.(geom.Rect); ok && r.Parent() == nil {
			ret = append(ret, r)
		}
	}
	return ret
}

// Selected returns the selected top level rectangles, i.e. the selection.
func (s *Surface) Selected() []geom.Rect {
	var ret []geom.Rect
	for _, r := range s.TopLevel() {
		if r.Selected() {
			ret = append(ret, r)
		}
	}
	return ret
}

func (s *Surface) NoteRects() []*geom.NoteRect {
	var ret []*geom.NoteRect
	for _, n := range s.nodes {
		if r, ok := n.(*geom.NoteRect); ok {
			ret = append(ret, r)
		}
	}
	return ret
}

// At returns the top level rectangle owning the topmost note rectangle at
// the point, or nil.
func (s *Surface) At(x, y float64) geom.Rect {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if r, ok := s.nodes[i].(*geom.NoteRect); ok && r.Contains(x, y) {
			return geom.TopLevel(r)
		}
	}
	return nil
}

// InBox returns the top level rectangles intersecting the box.
func (s *Surface) InBox(b geom.Bounds) []geom.Rect {
	var ret []geom.Rect
	for _, r := range s.TopLevel() {
		if r.Bounds().Intersects(b) {
			ret = append(ret, r)
		}
	}
	return ret
}
