// Package gomidi writes compositions as Standard MIDI Files.
package gomidi

import (
	"fmt"
	"io"

	"github.com/vsariola/notecomp"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

type timedMsg struct {
	tick int
	off  bool
	msg  midi.Message
}

// WriteSMF writes the notes as a format 1 Standard MIDI File: a tempo track
// followed by one track per instrument channel, with the instrument's program
// change at the start. Note start ticks and durations are in the file's
// ticks, ticksPerBeat to a quarter note.
func WriteSMF(w io.Writer, notes []*notecomp.Note, ticksPerBeat int, bpm float64) error {
	if ticksPerBeat <= 0 || ticksPerBeat > 0x7fff {
		return fmt.Errorf("ticks per beat out of range: %d", ticksPerBeat)
	}
	if bpm <= 0 {
		return fmt.Errorf("tempo must be positive, got %g", bpm)
	}
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)
	var tempo smf.Track
	tempo.Add(0, smf.MetaTrackSequenceName("notecomp"))
	tempo.Add(0, smf.MetaTempo(bpm))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return fmt.Errorf("adding the tempo track: %w", err)
	}
	for _, instr := range notecomp.Instruments {
		var msgs []timedMsg
		for _, n := range notes {
			if n.Instrument.Channel != instr.Channel {
				continue
			}
			if err := n.Validate(); err != nil {
				return fmt.Errorf("note %v: %w", n, err)
			}
			ch, key := uint8(n.Instrument.Channel), uint8(n.Pitch)
			msgs = append(msgs,
				timedMsg{tick: n.StartTick, msg: midi.NoteOn(ch, key, notecomp.Volume)},
				timedMsg{tick: n.EndTick(), off: true, msg: midi.NoteOff(ch, key)})
		}
		if len(msgs) == 0 {
			continue
		}
		slices.SortStableFunc(msgs, func(a, b timedMsg) int {
			if a.tick != b.tick {
				return a.tick - b.tick
			}
			switch {
			case a.off && !b.off:
				return -1
			case !a.off && b.off:
				return 1
			}
			return 0
		})
		var tr smf.Track
		tr.Add(0, smf.MetaInstrument(instr.Name))
		tr.Add(0, midi.ProgramChange(uint8(instr.Channel), uint8(instr.Program)))
		prev := 0
		for _, m := range msgs {
			tr.Add(uint32(m.tick-prev), m.msg)
			prev = m.tick
		}
		tr.Close(0)
		if err := s.Add(tr); err != nil {
			return fmt.Errorf("adding the track of %s: %w", instr.Name, err)
		}
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing the MIDI file: %w", err)
	}
	return nil
}
