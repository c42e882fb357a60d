package notecomp

import (
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

const (
	// Volume is the velocity every note of a composition is played with.
	Volume = 127
	// TrackIndex is the track of the MIDI sequence the composition is written to.
	TrackIndex = 0
	// MaxPitch is the highest MIDI key number.
	MaxPitch = 127
)

var (
	ErrPitchOutOfRange = errors.New("pitch out of MIDI range")
	ErrNegativeTick    = errors.New("start tick is negative")
	ErrEmptyDuration   = errors.New("duration is not positive")
)

// Note is a single note of a composition. Notes are compared by identity: two
// notes with the same fields are still different notes.
type Note struct {
	StartTick  int
	Duration   int
	Pitch      int
	Instrument Instrument
	Selected   bool
}

// NewNote validates the fields and returns a new note.
func NewNote(startTick, duration, pitch int, instrument Instrument) (*Note, error) {
	n := &Note{StartTick: startTick, Duration: duration, Pitch: pitch, Instrument: instrument}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Note) Validate() error {
	if n.Pitch < 0 || n.Pitch > MaxPitch {
		return fmt.Errorf("%w: %d", ErrPitchOutOfRange, n.Pitch)
	}
	if n.StartTick < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeTick, n.StartTick)
	}
	if n.Duration <= 0 {
		return fmt.Errorf("%w: %d", ErrEmptyDuration, n.Duration)
	}
	return nil
}

// EndTick is the first tick after the note has ended.
func (n *Note) EndTick() int {
	return n.StartTick + n.Duration
}

// Name returns the key name of the note, e.g. "C5".
func (n *Note) Name() string {
	return midi.Note(uint8(n.Pitch)).String()
}

// Copy returns a new note with the same fields.
func (n *Note) Copy() *Note {
	c := *n
	return &c
}

func (n *Note) String() string {
	return fmt.Sprintf("%s %d+%d %s", n.Name(), n.StartTick, n.Duration, n.Instrument.Name)
}
