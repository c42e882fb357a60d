package editor

import (
	"errors"

	"github.com/vsariola/notecomp/geom"
	"golang.org/x/exp/slices"
)

var ErrNoGroupSelected = errors.New("no groups selected")

// GroupCommand binds the selection to a new group, which becomes the
// selection.
type GroupCommand struct {
	surface  *Surface
	group    *geom.GroupRect
	selected []bool
}

// NewGroupCommand builds the group without binding it. Rectangles already
// bound to another group are left out and reported by the group's
// Warnings().
func NewGroupCommand(s *Surface, selection []geom.Rect) (*GroupCommand, error) {
	g, err := geom.NewGroup(selection)
	if err != nil {
		return nil, err
	}
	ret := &GroupCommand{surface: s, group: g}
	for _, c := range g.Children() {
		ret.selected = append(ret.selected, c.Selected())
	}
	return ret, nil
}

func (c *GroupCommand) Redo() {
	c.group.Bind()
	c.surface.Add(c.group)
	c.group.SetSelected(true)
}

func (c *GroupCommand) Undo() {
	c.surface.Remove(c.group)
	c.group.Unbind()
	for i, r := range c.group.Children() {
		r.SetSelected(c.selected[i])
	}
}

func (c *GroupCommand) Group() *geom.GroupRect { return c.group }

func (c *GroupCommand) String() string { return "group" }

// UngroupCommand unbinds the selected groups and removes them from the
// surface; their children become top level rectangles.
type UngroupCommand struct {
	surface  *Surface
	groups   []*geom.GroupRect
	removed  []placedNode
	selected []bool
	snap     geom.Snapshot
}

// NewUngroupCommand fails with ErrNoGroupSelected if the selection contains
// no top level group of the surface.
func NewUngroupCommand(s *Surface, selection []geom.Rect) (*UngroupCommand, error) {
	ret := &UngroupCommand{surface: s}
	var rects []geom.Rect
	for _, r := range selection {
		g, ok := r.(*geom.GroupRect)
		if !ok || g.Parent() != nil {
			continue
		}
		i := s.IndexOf(g)
		if i < 0 {
			continue
		}
		ret.groups = append(ret.groups, g)
		ret.removed = append(ret.removed, placedNode{node: g, index: i})
		ret.selected = append(ret.selected, g.Selected())
		rects = append(rects, g)
	}
	if len(ret.groups) == 0 {
		return nil, ErrNoGroupSelected
	}
	ret.snap = geom.Capture(rects...)
	return ret, nil
}

func (c *UngroupCommand) Redo() {
	for _, g := range c.groups {
		g.Unbind()
		c.surface.Remove(g)
	}
}

func (c *UngroupCommand) Undo() {
	c.snap.Restore()
	insertAscending(c.surface, c.removed)
	for i, g := range c.groups {
		g.SetSelected(c.selected[i])
	}
}

func (c *UngroupCommand) String() string { return "ungroup" }

// insertAscending puts the nodes back in order of their old index, which
// restores the old drawing order.
func insertAscending(s *Surface, nodes []placedNode) {
	sorted := slices.Clone(nodes)
	slices.SortFunc(sorted, func(a, b placedNode) int { return a.index - b.index })
	for _, p := range sorted {
		s.Insert(p.index, p.node)
	}
}
