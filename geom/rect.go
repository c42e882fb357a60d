/*
Package geom contains the selectable rectangles of the composition surface.

A rectangle is either a *NoteRect, which stands for exactly one note of the
composition, or a *GroupRect, which owns other rectangles. The Rect interface
is sealed: no other package can add variants.

A group keeps its direct children bound to its own x and width: while bound,
the children's x and width are not stored values but are derived on every read
from the group's current x and width and the binding edge recorded when the
group was bound. This makes stretching a group stretch its contents
proportionally. Only the horizontal axis is bound; y and height always belong
to the child.
*/
package geom

import (
	"github.com/google/uuid"
	"github.com/vsariola/notecomp"
)

type (
	// Node is anything drawn on the composition surface: rectangles and the
	// translucent ghost companions of note rectangles.
	Node interface {
		Bounds() Bounds
	}

	// Rect is a selectable rectangle, either a *NoteRect or a *GroupRect.
	Rect interface {
		Node
		ID() uuid.UUID
		X() float64
		Y() float64
		Width() float64
		Height() float64
		// SetX and SetWidth are ignored while the rectangle is bound to a
		// group; the group owns those values until it unbinds.
		SetX(x float64)
		SetY(y float64)
		SetWidth(w float64)
		SetHeight(h float64)
		Move(dx, dy float64)
		Selected() bool
		SetSelected(selected bool)
		StyleClass() string
		SetInstrument(instr notecomp.Instrument)
		Markup(indent int) string
		// Parent returns the group this rectangle is bound to, or nil.
		Parent() *GroupRect
		Contains(x, y float64) bool

		base() *shape
	}

	// Bounds is an axis aligned rectangle.
	Bounds struct {
		X, Y, Width, Height float64
	}

	shape struct {
		id                  uuid.UUID
		x, y, width, height float64
		selected            bool
		binding             *Binding
	}
)

func newShape(x, y, width, height float64) shape {
	return shape{id: uuid.New(), x: x, y: y, width: max(width, 0), height: max(height, 0)}
}

func (s *shape) base() *shape  { return s }
func (s *shape) ID() uuid.UUID { return s.id }
func (s *shape) Y() float64    { return s.y }
func (s *shape) Height() float64 {
	return s.height
}
func (s *shape) Selected() bool { return s.selected }

func (s *shape) X() float64 {
	if s.binding != nil {
		return s.binding.X()
	}
	return s.x
}

func (s *shape) Width() float64 {
	if s.binding != nil {
		return s.binding.Width()
	}
	return s.width
}

func (s *shape) SetX(x float64) {
	if s.binding != nil {
		return
	}
	s.x = x
}

func (s *shape) SetWidth(w float64) {
	if s.binding != nil {
		return
	}
	s.width = max(w, 0)
}

func (s *shape) SetY(y float64)      { s.y = y }
func (s *shape) SetHeight(h float64) { s.height = max(h, 0) }

func (s *shape) Parent() *GroupRect {
	if s.binding == nil {
		return nil
	}
	return s.binding.Parent
}

func (s *shape) Bounds() Bounds {
	return Bounds{X: s.X(), Y: s.y, Width: s.Width(), Height: s.height}
}

func (s *shape) Contains(x, y float64) bool {
	return s.Bounds().Contains(x, y)
}

func (b Bounds) Right() float64  { return b.X + b.Width }
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Intersects reports whether the two bounds overlap with a non-empty area.
func (b Bounds) Intersects(o Bounds) bool {
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(o Bounds) Bounds {
	x, y := min(b.X, o.X), min(b.Y, o.Y)
	return Bounds{X: x, Y: y, Width: max(b.Right(), o.Right()) - x, Height: max(b.Bottom(), o.Bottom()) - y}
}

// Extent returns the union of the bounds of the rectangles: leftmost x,
// rightmost x+width, topmost y and bottommost y+height. The extent of no
// rectangles is the zero Bounds.
func Extent(rects []Rect) Bounds {
	if len(rects) == 0 {
		return Bounds{}
	}
	ret := rects[0].Bounds()
	for _, r := range rects[1:] {
		ret = ret.Union(r.Bounds())
	}
	return ret
}

// TopLevel returns the outermost group r is (transitively) bound to, or r
// itself if it is not bound.
func TopLevel(r Rect) Rect {
	for p := r.Parent(); p != nil; p = r.Parent() {
		r = p
	}
	return r
}

// Descendants returns r and everything below it, parents before children.
func Descendants(r Rect) []Rect {
	ret := []Rect{r}
	if g, ok := r.(*GroupRect); ok {
		for _, c := range g.children {
			ret = append(ret, Descendants(c)...)
		}
	}
	return ret
}

// Leaves returns the note rectangles at or below r.
func Leaves(r Rect) []*NoteRect {
	var ret []*NoteRect
	for _, d := range Descendants(r) {
		if n, ok := d.(*NoteRect); ok {
			ret = append(ret, n)
		}
	}
	return ret
}
