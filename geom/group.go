package geom

import (
	"fmt"
	"strings"

	"github.com/vsariola/notecomp"
)

// GroupRect is a rectangle owning other rectangles. While bound, its direct
// children's x and width follow its own x and width proportionally.
type GroupRect struct {
	shape
	children     []Rect
	bindings     []*Binding
	initialWidth float64
	excluded     []Rect
}

// NewGroup creates a group over the selection without binding it. The bounds
// are the extent of the whole selection, but rectangles that already belong
// to a group are left out of the membership; they are reported by Warnings.
// NewGroup does not modify any rectangle: it fails with ErrEmptySelection if
// nothing could be grouped.
func NewGroup(selection []Rect) (*GroupRect, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}
	var members, children, excluded []Rect
	seen := map[Rect]bool{}
	for _, r := range selection {
		if r == nil || seen[r] {
			continue
		}
		seen[r] = true
		members = append(members, r)
		if r.Parent() != nil {
			excluded = append(excluded, r)
			continue
		}
		children = append(children, r)
	}
	if len(members) == 0 {
		return nil, ErrEmptySelection
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: all %d rectangles already belong to a group", ErrEmptySelection, len(excluded))
	}
	ext := Extent(members)
	g := &GroupRect{
		shape:        newShape(ext.X, ext.Y, ext.Width, ext.Height),
		children:     children,
		initialWidth: ext.Width,
		excluded:     excluded,
	}
	return g, nil
}

// Children returns the direct children in membership order.
func (g *GroupRect) Children() []Rect {
	return append([]Rect(nil), g.children...)
}

// Bindings returns the binding edges, or nil if the group is unbound.
func (g *GroupRect) Bindings() []*Binding {
	return append([]*Binding(nil), g.bindings...)
}

func (g *GroupRect) Bound() bool { return g.bindings != nil }

// InitialWidth is the scale basis recorded at the last bind.
func (g *GroupRect) InitialWidth() float64 { return g.initialWidth }

// Warnings lists the non-fatal problems of the group: children left out at
// creation and a degenerate scale basis.
func (g *GroupRect) Warnings() []error {
	var ret []error
	for _, r := range g.excluded {
		ret = append(ret, &AlreadyBoundWarning{Rect: r})
	}
	if g.initialWidth <= Epsilon {
		ret = append(ret, &DegenerateGeometryError{Width: g.initialWidth})
	}
	return ret
}

// Bind records the current width as the scale basis and binds every direct
// child to the group. Binding a bound group does nothing.
func (g *GroupRect) Bind() {
	if g.bindings != nil {
		return
	}
	g.initialWidth = g.Width()
	gx := g.X()
	g.bindings = make([]*Binding, 0, len(g.children))
	for _, c := range g.children {
		b := &Binding{Parent: g, Child: c, X0: c.X(), GX0: gx, W0: c.Width()}
		c.base().binding = b
		g.bindings = append(g.bindings, b)
	}
}

// Unbind detaches the children: each keeps its last derived x and width as
// its own values.
func (g *GroupRect) Unbind() {
	for _, b := range g.bindings {
		s := b.Child.base()
		x, w := b.Child.X(), b.Child.Width()
		s.binding = nil
		s.x, s.width = x, w
	}
	g.bindings = nil
}

// SetUniformWidth gives every note below the group the same width and packs
// the group around the result. Nested groups are normalized first, so the
// outer scale basis is measured from already normalized contents. The group
// must not be bound to a parent.
func (g *GroupRect) SetUniformWidth(w float64) {
	g.Unbind()
	for _, c := range g.children {
		switch c := c.(type) {
		case *NoteRect:
			c.SetWidth(w)
		case *GroupRect:
			c.SetUniformWidth(w)
		}
	}
	ext := Extent(g.children)
	g.SetX(ext.X)
	g.SetWidth(ext.Width)
	g.initialWidth = ext.Width
	g.Bind()
}

func (g *GroupRect) SetSelected(selected bool) {
	g.selected = selected
	for _, c := range g.children {
		c.SetSelected(selected)
	}
}

func (g *GroupRect) StyleClass() string {
	if g.selected {
		return "selected-group-note"
	}
	return "group-note"
}

func (g *GroupRect) SetInstrument(instr notecomp.Instrument) {
	for _, c := range g.children {
		c.SetInstrument(instr)
	}
}

// Move translates the group. Children follow the x through their binding;
// their y is moved explicitly, as y is never bound.
func (g *GroupRect) Move(dx, dy float64) {
	g.SetX(g.X() + dx)
	g.y += dy
	for _, c := range g.children {
		c.Move(0, dy)
	}
}

func (g *GroupRect) Markup(indent int) string {
	var b strings.Builder
	pad := strings.Repeat(" ", 4*indent)
	b.WriteString(pad + "<GroupRectangle>\n")
	for _, c := range g.children {
		b.WriteString(c.Markup(indent + 1))
	}
	b.WriteString(pad + "</GroupRectangle>\n")
	return b.String()
}
