package editor

import (
	"fmt"

	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/geom"
)

// GeometryCommand changes the geometry of top level rectangles and keeps
// their notes in step. Undo restores a snapshot taken when the command was
// built, binding edges included, so stretching and repacking groups undoes
// exactly.
type GeometryCommand struct {
	name  string
	rects []geom.Rect
	snap  geom.Snapshot
	apply func(r geom.Rect)
}

func newGeometryCommand(name string, rects []geom.Rect, apply func(r geom.Rect)) (*GeometryCommand, error) {
	var top []geom.Rect
	for _, r := range rects {
		if r != nil && r.Parent() == nil {
			top = append(top, r)
		}
	}
	if len(top) == 0 {
		return nil, geom.ErrEmptySelection
	}
	return &GeometryCommand{name: name, rects: top, snap: geom.Capture(top...), apply: apply}, nil
}

// NewMoveCommand translates the rectangles by (dx, dy). Moving a group moves
// its children along.
func NewMoveCommand(rects []geom.Rect, dx, dy float64) (*GeometryCommand, error) {
	return newGeometryCommand(fmt.Sprintf("move %g,%g", dx, dy), rects, func(r geom.Rect) {
		r.Move(dx, dy)
	})
}

// NewStretchCommand changes the width of each rectangle by dw, but never
// below minWidth. Stretching a bound group rescales its children.
func NewStretchCommand(rects []geom.Rect, dw, minWidth float64) (*GeometryCommand, error) {
	return newGeometryCommand(fmt.Sprintf("stretch %g", dw), rects, func(r geom.Rect) {
		r.SetWidth(max(r.Width()+dw, minWidth))
	})
}

// NewSameWidthCommand gives every note rectangle the width w. Groups are
// repacked around their resized children.
func NewSameWidthCommand(rects []geom.Rect, w float64) (*GeometryCommand, error) {
	return newGeometryCommand(fmt.Sprintf("same width %g", w), rects, func(r geom.Rect) {
		switch r := r.(type) {
		case *geom.GroupRect:
			r.SetUniformWidth(w)
		default:
			r.SetWidth(w)
		}
	})
}

func (c *GeometryCommand) Redo() {
	for _, r := range c.rects {
		c.apply(r)
	}
	syncNotes(c.rects)
}

func (c *GeometryCommand) Undo() {
	c.snap.Restore()
	syncNotes(c.rects)
}

func (c *GeometryCommand) String() string { return c.name }

// InstrumentCommand plays the notes of the rectangles with another
// instrument.
type InstrumentCommand struct {
	rects      []geom.Rect
	instrument notecomp.Instrument
	prev       map[*notecomp.Note]notecomp.Instrument
}

func NewInstrumentCommand(rects []geom.Rect, instr notecomp.Instrument) (*InstrumentCommand, error) {
	if len(rects) == 0 {
		return nil, geom.ErrEmptySelection
	}
	ret := &InstrumentCommand{
		rects:      append([]geom.Rect(nil), rects...),
		instrument: instr,
		prev:       map[*notecomp.Note]notecomp.Instrument{},
	}
	for _, r := range rects {
		for _, l := range geom.Leaves(r) {
			ret.prev[l.Note()] = l.Note().Instrument
		}
	}
	return ret, nil
}

func (c *InstrumentCommand) Redo() {
	for _, r := range c.rects {
		r.SetInstrument(c.instrument)
	}
}

func (c *InstrumentCommand) Undo() {
	for n, instr := range c.prev {
		n.Instrument = instr
	}
}

func (c *InstrumentCommand) String() string { return "instrument " + c.instrument.Name }
