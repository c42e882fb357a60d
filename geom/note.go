package geom

import (
	"fmt"
	"math"
	"strings"

	"github.com/vsariola/notecomp"
)

type (
	// NoteRect is the rectangle of a single note. The note and the rectangle
	// are created together and live and die together.
	NoteRect struct {
		shape
		note  *notecomp.Note
		ghost *Ghost
	}

	// Ghost is the translucent companion drawn together with a note
	// rectangle. It has no state of its own: it always covers its owner.
	Ghost struct {
		owner *NoteRect
	}
)

// NewNoteRect creates the rectangle of a note. The note's selected flag
// follows the rectangle's from now on.
func NewNoteRect(x, y, width, height float64, note *notecomp.Note) *NoteRect {
	r := &NoteRect{shape: newShape(x, y, width, height), note: note}
	note.Selected = false
	return r
}

func (r *NoteRect) Note() *notecomp.Note { return r.note }

// AttachGhost creates the ghost companion if there is none yet.
func (r *NoteRect) AttachGhost() *Ghost {
	if r.ghost == nil {
		r.ghost = &Ghost{owner: r}
	}
	return r.ghost
}

// Ghost returns the companion or nil.
func (r *NoteRect) Ghost() *Ghost { return r.ghost }

func (r *NoteRect) SetSelected(selected bool) {
	r.selected = selected
	r.note.Selected = selected
}

func (r *NoteRect) StyleClass() string {
	if r.selected {
		return "selected-note " + r.note.Instrument.Class()
	}
	return "note " + r.note.Instrument.Class()
}

func (r *NoteRect) SetInstrument(instr notecomp.Instrument) {
	r.note.Instrument = instr
}

func (r *NoteRect) Move(dx, dy float64) {
	r.SetX(r.X() + dx)
	r.y += dy
}

func (r *NoteRect) Markup(indent int) string {
	return fmt.Sprintf("%s<NoteRectangle x=\"%g\" y=\"%g\" width=\"%g\" instrument=\"%s\"/>\n",
		strings.Repeat(" ", 4*indent), r.X(), r.y, r.Width(), r.note.Instrument.Name)
}

// Sync writes the rectangle's geometry to its note: x is the start tick,
// width the duration and the row the pitch.
func (r *NoteRect) Sync() {
	r.note.StartTick = max(int(math.Round(r.X())), 0)
	r.note.Duration = max(int(math.Round(r.Width())), 1)
	if r.height > 0 {
		r.note.Pitch = PitchAt(r.y, r.height)
	}
}

func (g *Ghost) Owner() *NoteRect { return g.owner }
func (g *Ghost) Bounds() Bounds   { return g.owner.Bounds() }

// PitchAt returns the pitch of the grid row at y, rows being rowHeight tall
// and the highest pitch on top.
func PitchAt(y, rowHeight float64) int {
	p := notecomp.MaxPitch - int(math.Floor(y/rowHeight))
	return min(max(p, 0), notecomp.MaxPitch)
}

// RowY returns the top of the grid row of the pitch.
func RowY(pitch int, rowHeight float64) float64 {
	return float64(notecomp.MaxPitch-pitch) * rowHeight
}

// SnapY returns the top of the row containing y.
func SnapY(y, rowHeight float64) float64 {
	return math.Floor(y/rowHeight) * rowHeight
}
