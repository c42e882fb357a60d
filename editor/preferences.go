package editor

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsariola/notecomp"
	"gopkg.in/yaml.v2"
)

type Preferences struct {
	NoteWidth    float64
	NoteHeight   float64
	UniformWidth float64
	Instrument   string
	MaxUndo      int
	Clipboard    string
	Ghosts       bool
	TicksPerBeat int
	BPM          int
	YmlError     error `yaml:"-"`
}

//go:embed preferences.yml
var defaultPreferencesYaml []byte

// ConfigDirName is the directory under os.UserConfigDir() that holds the
// custom configuration files.
const ConfigDirName = "notecomp"

func DefaultPreferences() Preferences {
	var preferences Preferences
	err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// ReadCustomConfigYml modifies the target argument, i.e. needs a pointer
func ReadCustomConfigYml(filename string, target interface{}) (exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return false, err
	}
	bytes, err := os.ReadFile(filepath.Join(configDir, ConfigDirName, filename))
	if err != nil {
		return false, err
	}
	return true, yaml.UnmarshalStrict(bytes, target)
}

// MakePreferences returns the default preferences overridden by the user's
// preferences.yml, if there is one. A broken or invalid file is ignored as a
// whole and reported in YmlError of the default preferences.
func MakePreferences() Preferences {
	preferences := DefaultPreferences()
	exists, err := ReadCustomConfigYml("preferences.yml", &preferences)
	if exists && err == nil {
		err = preferences.Validate()
	}
	if exists && err != nil {
		defaults := DefaultPreferences()
		defaults.YmlError = err
		return defaults
	}
	return preferences
}

func (p Preferences) Validate() error {
	var errs []error
	if p.NoteWidth <= 0 {
		errs = append(errs, fmt.Errorf("notewidth must be positive, got %g", p.NoteWidth))
	}
	if p.NoteHeight <= 0 {
		errs = append(errs, fmt.Errorf("noteheight must be positive, got %g", p.NoteHeight))
	}
	if p.UniformWidth <= 0 {
		errs = append(errs, fmt.Errorf("uniformwidth must be positive, got %g", p.UniformWidth))
	}
	if _, ok := notecomp.InstrumentByName(p.Instrument); !ok {
		errs = append(errs, fmt.Errorf("unknown instrument %q", p.Instrument))
	}
	if p.Clipboard != "system" && p.Clipboard != "memory" {
		errs = append(errs, fmt.Errorf("clipboard must be system or memory, got %q", p.Clipboard))
	}
	if p.TicksPerBeat <= 0 || p.TicksPerBeat > 0x7fff {
		errs = append(errs, fmt.Errorf("ticksperbeat out of range: %d", p.TicksPerBeat))
	}
	if p.BPM <= 0 {
		errs = append(errs, fmt.Errorf("bpm must be positive, got %d", p.BPM))
	}
	return errors.Join(errs...)
}

// DefaultInstrument is the instrument new notes are played with.
func (p Preferences) DefaultInstrument() notecomp.Instrument {
	if i, ok := notecomp.InstrumentByName(p.Instrument); ok {
		return i
	}
	return notecomp.Instruments[0]
}
