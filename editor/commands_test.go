package editor_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/editor"
	"github.com/vsariola/notecomp/geom"
)

func leaf(x, y, w float64) *geom.NoteRect {
	n, err := notecomp.NewNote(int(x), max(int(w), 1), geom.PitchAt(y, 10), notecomp.Instruments[0])
	if err != nil {
		panic(err)
	}
	r := geom.NewNoteRect(x, y, w, 10, n)
	r.AttachGhost()
	return r
}

func place(s *editor.Surface, c *notecomp.Composition, rects ...*geom.NoteRect) {
	for _, r := range rects {
		s.Add(r, r.Ghost())
		c.AddNote(r.Note())
	}
}

type rectState struct {
	x, y, w, h float64
	selected   bool
	parent     *geom.GroupRect
}

type docState struct {
	nodes []geom.Node
	notes map[*notecomp.Note]notecomp.Note
	rects map[geom.Rect]rectState
}

func capture(s *editor.Surface, c *notecomp.Composition) docState {
	ret := docState{
		nodes: s.Nodes(),
		notes: map[*notecomp.Note]notecomp.Note{},
		rects: map[geom.Rect]rectState{},
	}
	for _, n := range c.Notes() {
		ret.notes[n] = *n
	}
	for _, r := range s.Rects() {
		ret.rects[r] = rectState{r.X(), r.Y(), r.Width(), r.Height(), r.Selected(), r.Parent()}
	}
	return ret
}

func (a docState) diff(b docState) error {
	if len(a.nodes) != len(b.nodes) {
		return fmt.Errorf("%d nodes, expected %d", len(b.nodes), len(a.nodes))
	}
	for i := range a.nodes {
		if a.nodes[i] != b.nodes[i] {
			return fmt.Errorf("node %d differs", i)
		}
	}
	if len(a.notes) != len(b.notes) {
		return fmt.Errorf("%d notes, expected %d", len(b.notes), len(a.notes))
	}
	for n, v := range a.notes {
		if w, ok := b.notes[n]; !ok || w != v {
			return fmt.Errorf("note %v missing or changed", v)
		}
	}
	for r, v := range a.rects {
		if w := b.rects[r]; w != v {
			return fmt.Errorf("rect %s: got %+v, expected %+v", r.ID(), w, v)
		}
	}
	return nil
}

func TestAddCommandScenario(t *testing.T) {
	s, c := editor.NewSurface(), notecomp.NewComposition()
	r2, r3 := leaf(100, 0, 10), leaf(200, 10, 10)
	place(s, c, r2, r3)
	r2.SetSelected(true)
	r3.SetSelected(true)
	n1 := leaf(0, 20, 10)
	h := editor.NewHistory(0)
	h.Push(editor.NewAddCommand(s, c, n1, false))
	if !n1.Selected() || r2.Selected() || r3.Selected() {
		t.Fatalf("after redo n1 should be the only selected rectangle")
	}
	if !c.Contains(n1.Note()) || !s.Contains(n1) || !s.Contains(n1.Ghost()) {
		t.Fatalf("n1, its ghost and its note should be in the document")
	}
	h.Undo()
	if c.Contains(n1.Note()) || s.Contains(n1) || s.Contains(n1.Ghost()) {
		t.Fatalf("n1, its ghost and its note should be gone after undo")
	}
	if !r2.Selected() || !r3.Selected() {
		t.Fatalf("r2 and r3 should be reselected after undo")
	}
}

func TestAddCommandModifier(t *testing.T) {
	for _, meta := range []bool{false, true} {
		s, c := editor.NewSurface(), notecomp.NewComposition()
		r1, r2, r3 := leaf(0, 0, 10), leaf(20, 0, 10), leaf(40, 0, 10)
		place(s, c, r1, r2, r3)
		g, err := geom.NewGroup([]geom.Rect{r1, r2})
		if err != nil {
			t.Fatal(err)
		}
		g.Bind()
		s.Add(g)
		r1.SetSelected(true) // selected inside an unselected group
		r3.SetSelected(true)
		h := editor.NewHistory(0)
		h.Push(editor.NewAddCommand(s, c, leaf(100, 0, 10), meta))
		if r3.Selected() {
			t.Errorf("meta=%v: the prior selection should be deselected", meta)
		}
		if r1.Selected() == !meta {
			t.Errorf("meta=%v: r1 selected=%v", meta, r1.Selected())
		}
		h.Undo()
		if !r3.Selected() {
			t.Errorf("meta=%v: the prior selection should be reselected", meta)
		}
	}
}

func TestSelectCommandScenario(t *testing.T) {
	r1, r2, r3 := leaf(0, 0, 10), leaf(20, 0, 10), leaf(40, 0, 10)
	r1.SetSelected(true)
	cmd := editor.NewSelectCommand([]geom.Rect{r1}, []geom.Rect{r2, r3})
	cmd.Redo()
	if r1.Selected() || !r2.Selected() || !r3.Selected() {
		t.Fatalf("redo should select r2 and r3 only")
	}
	cmd.Undo()
	if !r1.Selected() || r2.Selected() || r3.Selected() {
		t.Fatalf("undo should select r1 only")
	}
}

func TestGroupCommandScenario(t *testing.T) {
	s, c := editor.NewSurface(), notecomp.NewComposition()
	r1, r2 := leaf(0, 0, 10), leaf(20, 10, 10)
	place(s, c, r1, r2)
	r1.SetSelected(true)
	r2.SetSelected(true)
	cmd, err := editor.NewGroupCommand(s, s.Selected())
	if err != nil {
		t.Fatal(err)
	}
	if r1.Parent() != nil {
		t.Fatalf("building the command should not bind anything")
	}
	h := editor.NewHistory(0)
	h.Push(cmd)
	g := cmd.Group()
	if g.InitialWidth() != 30 || g.X() != 0 || g.Width() != 30 {
		t.Fatalf("group x=%v width=%v initialWidth=%v", g.X(), g.Width(), g.InitialWidth())
	}
	if sel := s.Selected(); len(sel) != 1 || sel[0] != g {
		t.Fatalf("the group should be the selection")
	}
	g.SetWidth(60)
	if r1.X() != 0 || r1.Width() != 20 || r2.X() != 40 || r2.Width() != 20 {
		t.Fatalf("unexpected children after stretch: %v %v %v %v", r1.X(), r1.Width(), r2.X(), r2.Width())
	}
	g.SetWidth(30)
	h.Undo()
	if s.Contains(g) || r1.Parent() != nil || r2.Parent() != nil {
		t.Fatalf("undo should remove and unbind the group")
	}
	if !r1.Selected() || !r2.Selected() {
		t.Fatalf("undo should restore the children's selection")
	}
}

func TestGroupCommandEmptySelection(t *testing.T) {
	s := editor.NewSurface()
	if _, err := editor.NewGroupCommand(s, nil); !errors.Is(err, geom.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("the surface should be untouched")
	}
}

func TestUngroupIsLossless(t *testing.T) {
	s, c := editor.NewSurface(), notecomp.NewComposition()
	r1, r2, r3 := leaf(0.5, 0, 10.25), leaf(20.1, 10, 7.3), leaf(90, 20, 3)
	place(s, c, r1, r2, r3)
	before := capture(s, c)
	h := editor.NewHistory(0)
	r1.SetSelected(true)
	r2.SetSelected(true)
	r3.SetSelected(true)
	group, err := editor.NewGroupCommand(s, s.Selected())
	if err != nil {
		t.Fatal(err)
	}
	h.Push(group)
	edges := group.Group().Bindings()
	ungroup, err := editor.NewUngroupCommand(s, s.Selected())
	if err != nil {
		t.Fatal(err)
	}
	h.Push(ungroup)
	for _, r := range []*geom.NoteRect{r1, r2, r3} {
		r.SetSelected(false)
	}
	if err := before.diff(capture(s, c)); err != nil {
		t.Fatalf("group then ungroup changed the document: %v", err)
	}
	h.Undo()
	got := group.Group().Bindings()
	if len(got) != len(edges) || got[0] != edges[0] || r1.Parent() != group.Group() {
		t.Fatalf("undoing the ungroup should restore the binding edges")
	}
	if group.Group().InitialWidth() != 92.5 {
		t.Errorf("initial width %v, expected 92.5", group.Group().InitialWidth())
	}
}

func TestUngroupWithoutGroups(t *testing.T) {
	s, c := editor.NewSurface(), notecomp.NewComposition()
	r := leaf(0, 0, 10)
	place(s, c, r)
	if _, err := editor.NewUngroupCommand(s, []geom.Rect{r}); !errors.Is(err, editor.ErrNoGroupSelected) {
		t.Fatalf("expected ErrNoGroupSelected, got %v", err)
	}
}

func TestDeleteRestoresDrawingOrder(t *testing.T) {
	s, c := editor.NewSurface(), notecomp.NewComposition()
	r1, r2, r3, r4 := leaf(0, 0, 10), leaf(20, 0, 10), leaf(40, 0, 10), leaf(60, 0, 10)
	place(s, c, r1, r2, r3, r4)
	g, err := geom.NewGroup([]geom.Rect{r2, r3})
	if err != nil {
		t.Fatal(err)
	}
	g.Bind()
	s.Add(g)
	g.SetSelected(true)
	before := capture(s, c)
	cmd, err := editor.NewDeleteCommand(s, c, []geom.Rect{g, r4})
	if err != nil {
		t.Fatal(err)
	}
	cmd.Redo()
	if s.Len() != 2 || c.Len() != 1 {
		t.Fatalf("expected r1 and its ghost to remain, got %d nodes and %d notes", s.Len(), c.Len())
	}
	cmd.Undo()
	if err := before.diff(capture(s, c)); err != nil {
		t.Fatalf("delete undo: %v", err)
	}
}

func TestDeleteBoundChildIsRejected(t *testing.T) {
	s, c := editor.NewSurface(), notecomp.NewComposition()
	r1, r2 := leaf(0, 0, 10), leaf(20, 0, 10)
	place(s, c, r1, r2)
	g, _ := geom.NewGroup([]geom.Rect{r1, r2})
	g.Bind()
	s.Add(g)
	if _, err := editor.NewDeleteCommand(s, c, []geom.Rect{r1}); !errors.Is(err, geom.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestPasteCommand(t *testing.T) {
	s, c := editor.NewSurface(), notecomp.NewComposition()
	r1 := leaf(0, 0, 10)
	place(s, c, r1)
	r1.SetSelected(true)
	p1, p2 := leaf(0, 30, 10), leaf(20, 40, 10)
	g, _ := geom.NewGroup([]geom.Rect{p1, p2})
	g.Bind()
	cmd, err := editor.NewPasteCommand(s, c, []geom.Rect{g})
	if err != nil {
		t.Fatal(err)
	}
	cmd.Redo()
	if r1.Selected() || !g.Selected() || !p1.Selected() {
		t.Fatalf("the pasted rectangles should replace the selection")
	}
	if s.Len() != 2+1+4 || c.Len() != 3 {
		t.Fatalf("got %d nodes and %d notes after paste", s.Len(), c.Len())
	}
	cmd.Undo()
	if s.Len() != 2 || c.Len() != 1 || !r1.Selected() {
		t.Fatalf("undo should remove the pasted rectangles and reselect r1")
	}
	if _, err := editor.NewPasteCommand(s, c, nil); !errors.Is(err, geom.ErrEmptySelection) {
		t.Errorf("pasting nothing should fail with ErrEmptySelection, got %v", err)
	}
}

func TestUndoRedoIdentity(t *testing.T) {
	type build func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error)
	tests := []struct {
		name  string
		build build
	}{
		{"add", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewAddCommand(s, c, leaf(500, 50, 10), false), nil
		}},
		{"add meta", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewAddCommand(s, c, leaf(500, 50, 10), true), nil
		}},
		{"delete", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewDeleteCommand(s, c, []geom.Rect{g, r[3]})
		}},
		{"select", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewSelectCommand(s.Selected(), []geom.Rect{r[0]}), nil
		}},
		{"paste", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewPasteCommand(s, c, []geom.Rect{leaf(5, 5, 5)})
		}},
		{"group", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewGroupCommand(s, []geom.Rect{r[0], g})
		}},
		{"ungroup", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewUngroupCommand(s, []geom.Rect{g})
		}},
		{"move", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewMoveCommand([]geom.Rect{g, r[0]}, 13.7, 10)
		}},
		{"stretch", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewStretchCommand([]geom.Rect{g}, 21.3, 1)
		}},
		{"same width", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewSameWidthCommand([]geom.Rect{g, r[3]}, 7)
		}},
		{"instrument", func(s *editor.Surface, c *notecomp.Composition, r []*geom.NoteRect, g *geom.GroupRect) (editor.Command, error) {
			return editor.NewInstrumentCommand([]geom.Rect{g}, notecomp.Instruments[6])
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := editor.NewSurface(), notecomp.NewComposition()
			r := []*geom.NoteRect{leaf(0, 0, 10), leaf(20, 10, 10.5), leaf(41.3, 20, 10), leaf(80, 30, 10)}
			place(s, c, r...)
			g, _ := geom.NewGroup([]geom.Rect{r[1], r[2]})
			g.Bind()
			s.Add(g)
			g.SetSelected(true)
			cmd, err := tt.build(s, c, r, g)
			if err != nil {
				t.Fatal(err)
			}
			before := capture(s, c)
			cmd.Redo()
			after := capture(s, c)
			cmd.Undo()
			if err := before.diff(capture(s, c)); err != nil {
				t.Fatalf("redo then undo: %v", err)
			}
			cmd.Redo()
			if err := after.diff(capture(s, c)); err != nil {
				t.Fatalf("undo then redo: %v", err)
			}
		})
	}
}
