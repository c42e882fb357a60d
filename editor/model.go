package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/geom"
)

// Model is the document being edited together with everything needed to
// edit it: the surface, the note set, the history, the clipboard and the
// alerts shown to the user. Model is not safe for concurrent use; all calls
// must come from one goroutine, usually the event loop of the UI.
type Model struct {
	surface     *Surface
	composition *notecomp.Composition
	history     *History
	alerts      Alerts
	clipboard   Clipboard
	prefs       Preferences
	logger      *slog.Logger
	instrument  notecomp.Instrument
	filePath    string
}

type (
	addNote struct {
		x, y float64
		meta bool
		*Model
	}
	clickSelect struct {
		x, y float64
		meta bool
		*Model
	}
	boxSelect struct {
		box  geom.Bounds
		meta bool
		*Model
	}
	moveSelection struct {
		dx, dy float64
		*Model
	}
	stretchSelection struct {
		dw float64
		*Model
	}
	applyInstrument struct {
		instr notecomp.Instrument
		*Model
	}
	selectAll        Model
	clearSelection   Model
	deleteSelection  Model
	groupSelection   Model
	ungroupSelection Model
	copySelection    Model
	cutSelection     Model
	pasteClipboard   Model
	undoCommand      Model
	redoCommand      Model
	sameWidth        Model
)

// NewModel returns a model with an empty document. A nil clipboard is
// replaced by the one named in the preferences and a nil logger by
// slog.Default().
func NewModel(prefs Preferences, clip Clipboard, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	if clip == nil {
		clip = NewClipboard(prefs.Clipboard)
	}
	m := &Model{
		surface:     NewSurface(),
		composition: notecomp.NewComposition(),
		history:     NewHistory(prefs.MaxUndo),
		clipboard:   clip,
		prefs:       prefs,
		logger:      logger,
		instrument:  prefs.DefaultInstrument(),
	}
	m.alerts.logger = logger
	if prefs.YmlError != nil {
		m.alerts.Add(fmt.Sprintf("Error in preferences.yml: %v", prefs.YmlError), Warning)
	}
	return m
}

func (m *Model) Surface() *Surface                  { return m.surface }
func (m *Model) Composition() *notecomp.Composition { return m.composition }
func (m *Model) History() *History                  { return m.history }
func (m *Model) Alerts() *Alerts                    { return &m.alerts }
func (m *Model) Preferences() Preferences           { return m.prefs }
func (m *Model) Instrument() notecomp.Instrument    { return m.instrument }
func (m *Model) FilePath() string                   { return m.filePath }
func (m *Model) SetFilePath(path string)            { m.filePath = path }

// Selection returns the selected top level rectangles.
func (m *Model) Selection() []geom.Rect { return m.surface.Selected() }

// ChangedSinceSave reports whether discarding the document would lose
// changes.
func (m *Model) ChangedSinceSave() bool { return !m.history.IsSaved() }

func (m *Model) MarkSaved() { m.history.MarkSaved() }

// Reset starts a new, empty document.
func (m *Model) Reset() {
	m.surface.Clear()
	m.composition.Clear()
	m.history.Clear()
	m.filePath = ""
	m.logger.Debug("new document")
}

// Notes returns the notes of the composition in playing order.
func (m *Model) Notes() []*notecomp.Note {
	return m.composition.Notes()
}

// Sheet returns the exchange form of the whole document.
func (m *Model) Sheet() *notecomp.Sheet {
	return SheetOf(m.surface.TopLevel())
}

// Markup returns the structural text form of the document.
func (m *Model) Markup() string {
	var b strings.Builder
	for _, r := range m.surface.TopLevel() {
		b.WriteString(r.Markup(0))
	}
	return b.String()
}

// LoadSheet replaces the document with the rectangles of the sheet. Loading
// is not undoable: the history is cleared and the document is marked saved.
func (m *Model) LoadSheet(sheet *notecomp.Sheet) error {
	if err := sheet.Validate(); err != nil {
		return err
	}
	rects, err := buildRects(sheet.Items, m.prefs.NoteHeight, m.prefs.Ghosts)
	if err != nil {
		return err
	}
	m.Reset()
	m.surface.Add(nodesOf(rects)...)
	for i, r := range rects {
		for _, l := range geom.Leaves(r) {
			m.composition.AddNote(l.Note())
		}
		r.SetSelected(sheet.Items[i].Selected)
	}
	m.history.MarkSaved()
	m.logger.Debug("loaded sheet", "rects", len(rects), "notes", m.composition.Len())
	return nil
}

func (m *Model) push(c Command) {
	m.history.Push(c)
	m.logger.Debug("push", "command", commandName(c), "undo", m.history.UndoDepth())
}

// AddNote adds a note at (x, y) with the current instrument. With meta set,
// only the current selection is deselected.
func (m *Model) AddNote(x, y float64, meta bool) Action {
	return MakeAction(addNote{x: x, y: y, meta: meta, Model: m})
}

func (a addNote) Enabled() bool {
	return a.x >= 0 && a.y >= 0 && a.y < float64(notecomp.MaxPitch+1)*a.prefs.NoteHeight
}

func (a addNote) Do() {
	h := a.prefs.NoteHeight
	y := geom.SnapY(a.y, h)
	note, err := notecomp.NewNote(int(math.Round(a.x)), max(int(math.Round(a.prefs.NoteWidth)), 1), geom.PitchAt(y, h), a.instrument)
	if err != nil {
		a.alerts.Add(fmt.Sprintf("Cannot add a note: %v", err), Error)
		return
	}
	r := geom.NewNoteRect(a.x, y, a.prefs.NoteWidth, h, note)
	if a.prefs.Ghosts {
		r.AttachGhost()
	}
	a.push(NewAddCommand(a.surface, a.composition, r, a.meta))
}

// Click selects the rectangle under (x, y). With meta set, the rectangle is
// toggled in the selection instead. Clicking an empty spot without meta
// clears the selection.
func (m *Model) Click(x, y float64, meta bool) Action {
	return MakeAction(clickSelect{x: x, y: y, meta: meta, Model: m})
}

func (a clickSelect) Do() {
	before := a.surface.Selected()
	var after []geom.Rect
	hit := a.surface.At(a.x, a.y)
	switch {
	case hit == nil && a.meta:
		return
	case hit == nil:
	case !a.meta:
		after = []geom.Rect{hit}
	case hit.Selected():
		for _, r := range before {
			if r != hit {
				after = append(after, r)
			}
		}
	default:
		after = append(append(after, before...), hit)
	}
	a.selectRects(before, after)
}

// SelectBox selects the rectangles touching the box, adding them to the
// selection if meta is set.
func (m *Model) SelectBox(box geom.Bounds, meta bool) Action {
	return MakeAction(boxSelect{box: box, meta: meta, Model: m})
}

func (a boxSelect) Do() {
	before := a.surface.Selected()
	after := a.surface.InBox(a.box)
	if a.meta {
		for _, r := range before {
			if !r.Bounds().Intersects(a.box) {
				after = append(after, r)
			}
		}
	}
	a.selectRects(before, after)
}

func (m *Model) selectRects(before, after []geom.Rect) {
	if sameRects(before, after) {
		return
	}
	m.push(NewSelectCommand(before, after))
}

func (m *Model) SelectAll() Action { return MakeAction((*selectAll)(m)) }
func (m *selectAll) Do() {
	all := m.surface.TopLevel()
	if len(all) == 0 {
		m.alerts.AddNamed("SelectAll", capitalize(geom.ErrEmptySelection.Error()), Warning)
		return
	}
	(*Model)(m).selectRects(m.surface.Selected(), all)
}

func (m *Model) ClearSelection() Action { return MakeAction((*clearSelection)(m)) }
func (m *clearSelection) Enabled() bool { return len(m.surface.Selected()) > 0 }
func (m *clearSelection) Do() {
	(*Model)(m).selectRects(m.surface.Selected(), nil)
}

func (m *Model) DeleteSelection() Action { return MakeAction((*deleteSelection)(m)) }
func (m *deleteSelection) Enabled() bool { return len(m.surface.Selected()) > 0 }
func (m *deleteSelection) Do()           { (*Model)(m).deleteSelected() }

func (m *Model) deleteSelected() {
	c, err := NewDeleteCommand(m.surface, m.composition, m.surface.Selected())
	if err != nil {
		m.alerts.Add(fmt.Sprintf("Cannot delete: %v", err), Warning)
		return
	}
	m.push(c)
}

// Group binds the selection to a new group.
func (m *Model) Group() Action           { return MakeAction((*groupSelection)(m)) }
func (m *groupSelection) Enabled() bool { return len(m.surface.Selected()) > 0 }
func (m *groupSelection) Do() {
	c, err := NewGroupCommand(m.surface, m.surface.Selected())
	if err != nil {
		m.alerts.AddNamed("Group", fmt.Sprintf("Cannot group: %v", err), Warning)
		return
	}
	(*Model)(m).push(c)
	for _, w := range c.Group().Warnings() {
		var bound *geom.AlreadyBoundWarning
		if errors.As(w, &bound) {
			m.alerts.Add(capitalize(w.Error()), Info)
		} else {
			m.alerts.Add(capitalize(w.Error()), Warning)
		}
	}
}

// Ungroup dissolves the selected groups.
func (m *Model) Ungroup() Action { return MakeAction((*ungroupSelection)(m)) }
func (m *ungroupSelection) Enabled() bool {
	for _, r := range m.surface.Selected() {
		if _, ok := r.(*geom.GroupRect); ok {
			return true
		}
	}
	return false
}
func (m *ungroupSelection) Do() {
	c, err := NewUngroupCommand(m.surface, m.surface.Selected())
	if err != nil {
		m.alerts.AddNamed("Ungroup", fmt.Sprintf("Cannot ungroup: %v", err), Warning)
		return
	}
	(*Model)(m).push(c)
}

func (m *Model) Copy() Action { return MakeAction((*copySelection)(m)) }
func (m *copySelection) Enabled() bool { return len(m.surface.Selected()) > 0 }
func (m *copySelection) Do()           { (*Model)(m).copySelected() }

func (m *Model) copySelected() bool {
	text, err := encodeClipboard(SheetOf(m.surface.Selected()))
	if err == nil {
		err = m.clipboard.WriteAll(text)
	}
	if err != nil {
		m.alerts.Add(fmt.Sprintf("Cannot copy: %v", err), Error)
		return false
	}
	return true
}

// Cut copies the selection to the clipboard and deletes it.
func (m *Model) Cut() Action            { return MakeAction((*cutSelection)(m)) }
func (m *cutSelection) Enabled() bool { return len(m.surface.Selected()) > 0 }
func (m *cutSelection) Do() {
	if (*Model)(m).copySelected() {
		(*Model)(m).deleteSelected()
	}
}

// Paste inserts a copy of the clipboard contents and selects it.
func (m *Model) Paste() Action { return MakeAction((*pasteClipboard)(m)) }
func (m *pasteClipboard) Do() {
	text, err := m.clipboard.ReadAll()
	if err != nil {
		m.alerts.Add(fmt.Sprintf("Cannot read the clipboard: %v", err), Error)
		return
	}
	sheet, err := decodeClipboard(text)
	if err != nil {
		m.alerts.AddNamed("Paste", "Nothing to paste", Info)
		m.logger.Debug("paste", "err", err)
		return
	}
	rects, err := buildRects(sheet.Items, m.prefs.NoteHeight, m.prefs.Ghosts)
	if err != nil {
		m.alerts.Add(fmt.Sprintf("Cannot paste: %v", err), Error)
		return
	}
	c, err := NewPasteCommand(m.surface, m.composition, rects)
	if err != nil {
		m.alerts.AddNamed("Paste", "Nothing to paste", Info)
		return
	}
	(*Model)(m).push(c)
}

func (m *Model) Undo() Action { return MakeAction((*undoCommand)(m)) }
func (m *undoCommand) Enabled() bool { return m.history.CanUndo() }
func (m *undoCommand) Do() {
	m.history.Undo()
	m.logger.Debug("undo", "undo", m.history.UndoDepth(), "redo", m.history.RedoDepth())
}

func (m *Model) Redo() Action { return MakeAction((*redoCommand)(m)) }
func (m *redoCommand) Enabled() bool { return m.history.CanRedo() }
func (m *redoCommand) Do() {
	m.history.Redo()
	m.logger.Debug("redo", "undo", m.history.UndoDepth(), "redo", m.history.RedoDepth())
}

// Move translates the selection by (dx, dy), keeping it on the grid.
func (m *Model) Move(dx, dy float64) Action {
	return MakeAction(moveSelection{dx: dx, dy: dy, Model: m})
}

func (a moveSelection) Enabled() bool { return len(a.surface.Selected()) > 0 }
func (a moveSelection) Do() {
	sel := a.surface.Selected()
	ext := geom.Extent(sel)
	dx := max(a.dx, -ext.X)
	dy := max(a.dy, -ext.Y)
	dy = min(dy, float64(notecomp.MaxPitch+1)*a.prefs.NoteHeight-ext.Bottom())
	if dx == 0 && dy == 0 {
		return
	}
	c, err := NewMoveCommand(sel, dx, dy)
	if err != nil {
		return
	}
	a.push(c)
}

// Stretch changes the width of each selected rectangle by dw.
func (m *Model) Stretch(dw float64) Action {
	return MakeAction(stretchSelection{dw: dw, Model: m})
}

func (a stretchSelection) Enabled() bool { return len(a.surface.Selected()) > 0 }
func (a stretchSelection) Do() {
	c, err := NewStretchCommand(a.surface.Selected(), a.dw, 1)
	if err != nil {
		return
	}
	a.push(c)
}

// SameWidth gives every selected note the uniform width of the preferences.
func (m *Model) SameWidth() Action { return MakeAction((*sameWidth)(m)) }
func (m *sameWidth) Enabled() bool { return len(m.surface.Selected()) > 0 }
func (m *sameWidth) Do() {
	c, err := NewSameWidthCommand(m.surface.Selected(), m.prefs.UniformWidth)
	if err != nil {
		return
	}
	(*Model)(m).push(c)
}

// SetInstrument makes instr the instrument of new notes and of the selected
// ones.
func (m *Model) SetInstrument(instr notecomp.Instrument) Action {
	return MakeAction(applyInstrument{instr: instr, Model: m})
}

func (a applyInstrument) Do() {
	a.instrument = a.instr
	sel := a.surface.Selected()
	if len(sel) == 0 {
		return
	}
	c, err := NewInstrumentCommand(sel, a.instr)
	if err != nil {
		return
	}
	a.push(c)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
