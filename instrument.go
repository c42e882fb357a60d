package notecomp

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Instrument is a General MIDI program played on a fixed channel. Each of the
// built-in instruments has its own channel, so notes of different instruments
// never steal each other's program changes.
type Instrument struct {
	Name    string
	Channel int
	Program int
}

// Instruments lists the instruments a composition can use, in the order they
// are offered to the user.
var Instruments = []Instrument{
	{Name: "Piano", Channel: 0, Program: 0},
	{Name: "Harpsichord", Channel: 1, Program: 6},
	{Name: "Marimba", Channel: 2, Program: 12},
	{Name: "Church Organ", Channel: 3, Program: 19},
	{Name: "Accordion", Channel: 4, Program: 21},
	{Name: "Guitar", Channel: 5, Program: 24},
	{Name: "Violin", Channel: 6, Program: 40},
	{Name: "French Horn", Channel: 7, Program: 60},
}

// InstrumentByName finds an instrument from the table, ignoring case.
func InstrumentByName(name string) (Instrument, bool) {
	for _, instr := range Instruments {
		if strings.EqualFold(instr.Name, name) {
			return instr, true
		}
	}
	return Instrument{}, false
}

// Class returns the style class of the instrument, e.g. "french-horn".
func (i Instrument) Class() string {
	lower := cases.Lower(language.Und)
	return strings.ReplaceAll(lower.String(strings.TrimSpace(i.Name)), " ", "-")
}

func (i Instrument) String() string {
	return i.Name
}
