package editor

import (
	"fmt"
	"math"

	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/geom"
)

// SheetOf returns the exchange form of the rectangles.
func SheetOf(rects []geom.Rect) *notecomp.Sheet {
	ret := &notecomp.Sheet{}
	for _, r := range rects {
		ret.Items = append(ret.Items, itemOf(r))
	}
	return ret
}

func itemOf(r geom.Rect) notecomp.Item {
	ret := notecomp.Item{
		ID:       r.ID().String(),
		X:        r.X(),
		Y:        r.Y(),
		Width:    r.Width(),
		Selected: r.Selected(),
	}
	switch r := r.(type) {
	case *geom.GroupRect:
		for _, c := range r.Children() {
			ret.Group = append(ret.Group, itemOf(c))
		}
	case *geom.NoteRect:
		ret.Instrument = r.Note().Instrument.Name
	}
	return ret
}

// buildRects creates new rectangles, with new notes, from the items. Groups
// are bound right away. The rectangles are not selected.
func buildRects(items []notecomp.Item, rowHeight float64, ghosts bool) ([]geom.Rect, error) {
	var ret []geom.Rect
	for i, it := range items {
		r, err := buildRect(it, rowHeight, ghosts)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		ret = append(ret, r)
	}
	return ret, nil
}

func buildRect(it notecomp.Item, rowHeight float64, ghosts bool) (geom.Rect, error) {
	if it.IsGroup() {
		children, err := buildRects(it.Group, rowHeight, ghosts)
		if err != nil {
			return nil, err
		}
		g, err := geom.NewGroup(children)
		if err != nil {
			return nil, err
		}
		g.Bind()
		return g, nil
	}
	instr, ok := notecomp.InstrumentByName(it.Instrument)
	if !ok {
		return nil, fmt.Errorf("unknown instrument %q", it.Instrument)
	}
	y := geom.SnapY(it.Y, rowHeight)
	note, err := notecomp.NewNote(int(math.Round(it.X)), max(int(math.Round(it.Width)), 1), geom.PitchAt(y, rowHeight), instr)
	if err != nil {
		return nil, err
	}
	r := geom.NewNoteRect(it.X, y, it.Width, rowHeight, note)
	if ghosts {
		r.AttachGhost()
	}
	return r, nil
}
