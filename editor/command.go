package editor

import (
	"fmt"

	"github.com/vsariola/notecomp/geom"
)

// Command is a reversible change of the document. Constructors of commands
// only capture state; Redo applies the change and Undo exactly inverts it,
// selection included. A command built from a valid document state never
// fails at Redo or Undo time.
type Command interface {
	Redo()
	Undo()
}

// commandName returns the name commands are logged with.
func commandName(c Command) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}

func setSelected(rects []geom.Rect, selected bool) {
	for _, r := range rects {
		r.SetSelected(selected)
	}
}

// nodesOf returns the surface nodes of the rectangles: each rectangle, its
// descendants and the ghosts of the note rectangles, parents first.
func nodesOf(rects []geom.Rect) []geom.Node {
	var ret []geom.Node
	for _, r := range rects {
		for _, d := range geom.Descendants(r) {
			ret = append(ret, d)
			if n, ok := d.(*geom.NoteRect); ok && n.Ghost() != nil {
				ret = append(ret, n.Ghost())
			}
		}
	}
	return ret
}

// syncNotes writes the geometry of the note rectangles under rects to their
// notes.
func syncNotes(rects []geom.Rect) {
	for _, r := range rects {
		for _, l := range geom.Leaves(r) {
			l.Sync()
		}
	}
}
