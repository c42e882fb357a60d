package editor

import (
	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/geom"
)

// AddCommand puts a new note rectangle, its ghost and its note in the
// document and makes it the selection.
//
// Without the modifier every rectangle of the surface is deselected first;
// with the modifier only the prior selection is. Undo reselects the prior
// selection in both cases.
type AddCommand struct {
	surface *Surface
	notes   *notecomp.Composition
	rect    *geom.NoteRect
	meta    bool
	prev    []geom.Rect
}

func NewAddCommand(s *Surface, c *notecomp.Composition, rect *geom.NoteRect, meta bool) *AddCommand {
	return &AddCommand{surface: s, notes: c, rect: rect, meta: meta, prev: s.Selected()}
}

func (c *AddCommand) Redo() {
	if c.meta {
		setSelected(c.prev, false)
	} else {
		setSelected(c.surface.Rects(), false)
	}
	c.rect.SetSelected(true)
	c.surface.Add(c.rect)
	if g := c.rect.Ghost(); g != nil {
		c.surface.Add(g)
	}
	c.notes.AddNote(c.rect.Note())
}

func (c *AddCommand) Undo() {
	c.surface.Remove(c.rect)
	if g := c.rect.Ghost(); g != nil {
		c.surface.Remove(g)
	}
	c.notes.RemoveNote(c.rect.Note())
	setSelected(c.prev, true)
}

func (c *AddCommand) String() string { return "add " + c.rect.Note().String() }

// PasteCommand inserts freshly duplicated rectangles with their notes and
// makes them the selection.
type PasteCommand struct {
	surface *Surface
	notes   *notecomp.Composition
	rects   []geom.Rect
	nodes   []geom.Node
	prev    []geom.Rect
}

// NewPasteCommand takes top level rectangles that are not on the surface
// yet. It fails with geom.ErrEmptySelection if there are none.
func NewPasteCommand(s *Surface, c *notecomp.Composition, rects []geom.Rect) (*PasteCommand, error) {
	if len(rects) == 0 {
		return nil, geom.ErrEmptySelection
	}
	return &PasteCommand{
		surface: s,
		notes:   c,
		rects:   append([]geom.Rect(nil), rects...),
		nodes:   nodesOf(rects),
		prev:    s.Selected(),
	}, nil
}

func (c *PasteCommand) Redo() {
	setSelected(c.prev, false)
	c.surface.Add(c.nodes...)
	for _, r := range c.rects {
		for _, l := range geom.Leaves(r) {
			c.notes.AddNote(l.Note())
		}
	}
	setSelected(c.rects, true)
}

func (c *PasteCommand) Undo() {
	for _, n := range c.nodes {
		c.surface.Remove(n)
	}
	for _, r := range c.rects {
		for _, l := range geom.Leaves(r) {
			c.notes.RemoveNote(l.Note())
		}
	}
	setSelected(c.prev, true)
}

func (c *PasteCommand) String() string { return "paste" }
