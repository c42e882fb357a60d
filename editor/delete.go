package editor

import (
	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/geom"
)

// DeleteCommand removes top level rectangles, everything below them, their
// ghosts and their notes. Undo puts every node back at its old drawing index.
type DeleteCommand struct {
	surface  *Surface
	notes    *notecomp.Composition
	rects    []geom.Rect
	selected []bool
	removed  []placedNode
}

type placedNode struct {
	node  geom.Node
	index int
}

// NewDeleteCommand fails with geom.ErrEmptySelection if none of the
// rectangles is a top level rectangle of the surface.
func NewDeleteCommand(s *Surface, c *notecomp.Composition, rects []geom.Rect) (*DeleteCommand, error) {
	ret := &DeleteCommand{surface: s, notes: c}
	for _, r := range rects {
		if r == nil || r.Parent() != nil || !s.Contains(r) {
			continue
		}
		ret.rects = append(ret.rects, r)
		ret.selected = append(ret.selected, r.Selected())
	}
	if len(ret.rects) == 0 {
		return nil, geom.ErrEmptySelection
	}
	for _, n := range nodesOf(ret.rects) {
		if i := s.IndexOf(n); i >= 0 {
			ret.removed = append(ret.removed, placedNode{node: n, index: i})
		}
	}
	return ret, nil
}

func (c *DeleteCommand) Redo() {
	for _, p := range c.removed {
		c.surface.Remove(p.node)
	}
	for _, r := range c.rects {
		for _, l := range geom.Leaves(r) {
			c.notes.RemoveNote(l.Note())
		}
	}
}

func (c *DeleteCommand) Undo() {
	insertAscending(c.surface, c.removed)
	for i, r := range c.rects {
		for _, l := range geom.Leaves(r) {
			c.notes.AddNote(l.Note())
		}
		r.SetSelected(c.selected[i])
	}
}

func (c *DeleteCommand) String() string { return "delete" }
