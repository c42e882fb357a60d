package notecomp

import (
	"sort"
)

// Composition is the authoritative set of notes. The editor adds and removes
// notes as rectangles come and go, and every command that moves or resizes
// rectangles writes the new timing and pitch to their notes, so the set is
// current after each command.
type Composition struct {
	notes map[*Note]struct{}
}

func NewComposition() *Composition {
	return &Composition{notes: map[*Note]struct{}{}}
}

// AddNote adds the note to the set. Adding a note twice has no effect.
func (c *Composition) AddNote(n *Note) {
	if c.notes == nil {
		c.notes = map[*Note]struct{}{}
	}
	c.notes[n] = struct{}{}
}

// RemoveNote removes the note from the set, reporting whether it was there.
func (c *Composition) RemoveNote(n *Note) bool {
	if _, ok := c.notes[n]; !ok {
		return false
	}
	delete(c.notes, n)
	return true
}

func (c *Composition) Contains(n *Note) bool {
	_, ok := c.notes[n]
	return ok
}

func (c *Composition) Len() int {
	return len(c.notes)
}

// Notes returns the notes ordered by start tick, then pitch, then channel.
// The order of notes that tie on all three is unspecified.
func (c *Composition) Notes() []*Note {
	ret := make([]*Note, 0, len(c.notes))
	for n := range c.notes {
		ret = append(ret, n)
	}
	sort.SliceStable(ret, func(i, j int) bool {
		a, b := ret[i], ret[j]
		if a.StartTick != b.StartTick {
			return a.StartTick < b.StartTick
		}
		if a.Pitch != b.Pitch {
			return a.Pitch < b.Pitch
		}
		return a.Instrument.Channel < b.Instrument.Channel
	})
	return ret
}

// SelectedNotes returns the notes whose selected flag is set, in the same
// order as Notes.
func (c *Composition) SelectedNotes() []*Note {
	var ret []*Note
	for _, n := range c.Notes() {
		if n.Selected {
			ret = append(ret, n)
		}
	}
	return ret
}

// Clear removes all notes.
func (c *Composition) Clear() {
	c.notes = map[*Note]struct{}{}
}

// LengthInTicks is the end tick of the last ending note.
func (c *Composition) LengthInTicks() int {
	l := 0
	for n := range c.notes {
		l = max(l, n.EndTick())
	}
	return l
}
