// Package tui is a terminal front end for the editor, built on bubbletea.
//
// The grid shows time to the right and pitch upwards: one row per MIDI key
// and one column per a fixed number of ticks. Every key press is turned into
// an editor.Action; the view is always rendered from the editor model.
package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/editor"
	"github.com/vsariola/notecomp/geom"
)

const (
	labelWidth = 5
	numRows    = notecomp.MaxPitch + 1
	alertTick  = 100 * time.Millisecond
)

type Model struct {
	editor      *editor.Model
	width       int
	height      int
	cursorCol   int
	cursorRow   int
	scrollCol   int
	scrollRow   int
	ticksPerCol float64
	confirmQuit bool
	savePath    string
	lastTick    time.Time
}

type tickMsg time.Time

// New returns the terminal front end of m. Saving writes to the file the
// document was read from, or to savePath if it was not read from a file.
func New(m *editor.Model, savePath string) *Model {
	ret := &Model{
		editor:      m,
		width:       80,
		height:      24,
		ticksPerCol: max(m.Preferences().NoteWidth/10, 1),
		savePath:    savePath,
		lastTick:    time.Now(),
	}
	ret.cursorRow = notecomp.MaxPitch - 60
	ret.scrollRow = ret.cursorRow - 10
	return ret
}

// Open reads the composition at path into m and returns the front end saving
// back to it. A missing file starts a new composition at path. A file that
// cannot be read or loaded is returned as an error and never adopted as the
// save target.
func Open(m *editor.Model, path string) (*Model, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		m.SetFilePath(path)
		return New(m, path), nil
	}
	if err != nil {
		return nil, err
	}
	if err := m.ReadSheet(f); err != nil {
		return nil, err
	}
	return New(m, path), nil
}

func (t *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(alertTick, func(now time.Time) tea.Msg { return tickMsg(now) })
}

func (t *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width, t.height = msg.Width, msg.Height
		t.scrollIntoView()
	case tickMsg:
		now := time.Time(msg)
		t.editor.Alerts().Update(now.Sub(t.lastTick))
		t.lastTick = now
		return t, tick()
	case tea.MouseMsg:
		if msg.Type != tea.MouseLeft || msg.X < labelWidth || msg.Y >= t.gridRows() {
			return t, nil
		}
		t.cursorCol = t.scrollCol + msg.X - labelWidth
		t.cursorRow = t.scrollRow + msg.Y
		t.editor.Click(t.cursorX(), t.cursorY(), msg.Alt || msg.Ctrl).Do()
	case tea.KeyMsg:
		return t, t.key(msg.String())
	}
	return t, nil
}

func (t *Model) key(k string) tea.Cmd {
	if k != "q" {
		t.confirmQuit = false
	}
	e := t.editor
	h := e.Preferences().NoteHeight
	switch k {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if e.ChangedSinceSave() && !t.confirmQuit {
			t.confirmQuit = true
			e.Alerts().AddNamed("Quit", "Unsaved changes, press q again to quit", editor.Warning)
			return nil
		}
		return tea.Quit
	case "left", "h":
		t.moveCursor(-1, 0)
	case "right", "l":
		t.moveCursor(1, 0)
	case "up", "k":
		t.moveCursor(0, -1)
	case "down", "j":
		t.moveCursor(0, 1)
	case "shift+left", "H":
		e.Move(-t.ticksPerCol, 0).Do()
	case "shift+right", "L":
		e.Move(t.ticksPerCol, 0).Do()
	case "shift+up", "K":
		e.Move(0, -h).Do()
	case "shift+down", "J":
		e.Move(0, h).Do()
	case "a", "enter":
		e.AddNote(t.cursorX(), t.cursorY(), false).Do()
	case "A":
		e.AddNote(t.cursorX(), t.cursorY(), true).Do()
	case " ":
		e.Click(t.cursorX(), t.cursorY(), false).Do()
	case "v":
		e.Click(t.cursorX(), t.cursorY(), true).Do()
	case "ctrl+a":
		e.SelectAll().Do()
	case "esc":
		e.ClearSelection().Do()
	case "d", "delete", "backspace":
		e.DeleteSelection().Do()
	case "g":
		e.Group().Do()
	case "G":
		e.Ungroup().Do()
	case "y":
		e.Copy().Do()
	case "x":
		e.Cut().Do()
	case "p":
		e.Paste().Do()
	case "u":
		e.Undo().Do()
	case "U", "ctrl+r":
		e.Redo().Do()
	case "+", "=":
		e.Stretch(t.ticksPerCol).Do()
	case "-":
		e.Stretch(-t.ticksPerCol).Do()
	case "w":
		e.SameWidth().Do()
	case "1", "2", "3", "4", "5", "6", "7", "8":
		e.SetInstrument(notecomp.Instruments[int(k[0]-'1')]).Do()
	case "ctrl+s":
		t.save()
	case "ctrl+n":
		if e.ChangedSinceSave() {
			e.Alerts().AddNamed("New", "Unsaved changes, save before starting a new composition", editor.Warning)
			return nil
		}
		e.Reset()
	}
	return nil
}

func (t *Model) save() {
	path := t.editor.FilePath()
	if path == "" {
		path = t.savePath
	}
	f, err := os.Create(path)
	if err != nil {
		t.editor.Alerts().Add(fmt.Sprintf("Cannot save: %v", err), editor.Error)
		return
	}
	if t.editor.WriteSheet(f) == nil {
		t.editor.Alerts().AddNamed("Save", "Saved to "+path, editor.Info)
	}
}

func (t *Model) moveCursor(dc, dr int) {
	t.cursorCol = max(t.cursorCol+dc, 0)
	t.cursorRow = min(max(t.cursorRow+dr, 0), numRows-1)
	t.scrollIntoView()
}

func (t *Model) scrollIntoView() {
	cols, rows := t.gridCols(), t.gridRows()
	if t.cursorCol < t.scrollCol {
		t.scrollCol = t.cursorCol
	} else if t.cursorCol >= t.scrollCol+cols {
		t.scrollCol = t.cursorCol - cols + 1
	}
	if t.cursorRow < t.scrollRow {
		t.scrollRow = t.cursorRow
	} else if t.cursorRow >= t.scrollRow+rows {
		t.scrollRow = t.cursorRow - rows + 1
	}
	t.scrollRow = min(max(t.scrollRow, 0), max(numRows-rows, 0))
}

func (t *Model) gridCols() int { return max(t.width-labelWidth, 1) }
func (t *Model) gridRows() int { return max(t.height-2, 1) }

// cursorX and cursorY are the surface coordinates of the cursor cell: its
// left edge and the middle of its row.
func (t *Model) cursorX() float64 { return float64(t.cursorCol) * t.ticksPerCol }
func (t *Model) cursorY() float64 {
	h := t.editor.Preferences().NoteHeight
	return geom.RowY(notecomp.MaxPitch-t.cursorRow, h) + h/2
}
