package editor

import "github.com/vsariola/notecomp/geom"

// SelectCommand replaces one selection with another.
type SelectCommand struct {
	before, after []geom.Rect
}

func NewSelectCommand(before, after []geom.Rect) *SelectCommand {
	return &SelectCommand{
		before: append([]geom.Rect(nil), before...),
		after:  append([]geom.Rect(nil), after...),
	}
}

func (c *SelectCommand) Redo() {
	setSelected(c.before, false)
	setSelected(c.after, true)
}

func (c *SelectCommand) Undo() {
	setSelected(c.after, false)
	setSelected(c.before, true)
}

func (c *SelectCommand) String() string { return "select" }

// sameRects reports whether a and b hold the same rectangles, in any order.
func sameRects(a, b []geom.Rect) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[geom.Rect]struct{}, len(a))
	for _, r := range a {
		set[r] = struct{}{}
	}
	for _, r := range b {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}
