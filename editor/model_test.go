package editor_test

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/editor"
	"github.com/vsariola/notecomp/geom"
)

func newModel(t *testing.T) *editor.Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return editor.NewModel(editor.DefaultPreferences(), &editor.MemoryClipboard{}, logger)
}

func exampleSheet() *notecomp.Sheet {
	return &notecomp.Sheet{Items: []notecomp.Item{
		{X: 0, Y: 600, Width: 100, Instrument: "Piano"},
		{X: 150, Y: 620, Width: 50, Instrument: "Violin", Selected: true},
		{Group: []notecomp.Item{
			{X: 300, Y: 500, Width: 100, Instrument: "Marimba"},
			{Group: []notecomp.Item{
				{X: 420, Y: 510, Width: 30, Instrument: "Guitar"},
				{X: 480, Y: 530, Width: 70, Instrument: "Guitar"},
			}},
		}},
	}}
}

func TestModelLoadSheet(t *testing.T) {
	m := newModel(t)
	if err := m.LoadSheet(exampleSheet()); err != nil {
		t.Fatal(err)
	}
	if m.Composition().Len() != 5 {
		t.Fatalf("expected 5 notes, got %d", m.Composition().Len())
	}
	if n := len(m.Surface().TopLevel()); n != 3 {
		t.Fatalf("expected 3 top level rectangles, got %d", n)
	}
	if n := len(m.Selection()); n != 1 {
		t.Fatalf("expected 1 selected rectangle, got %d", n)
	}
	if m.ChangedSinceSave() || m.History().CanUndo() {
		t.Fatalf("a loaded document should be saved and have no history")
	}
	first := m.Notes()[0]
	if first.StartTick != 0 || first.Duration != 100 || first.Pitch != 67 || first.Instrument.Name != "Piano" {
		t.Errorf("unexpected first note %v", first)
	}
}

func TestModelSelectAllEmpty(t *testing.T) {
	m := newModel(t)
	m.SelectAll().Do()
	a, ok := m.Alerts().Last()
	if !ok || a.Priority != editor.Warning {
		t.Fatalf("select all on an empty surface should warn, got %+v", a)
	}
	if m.History().CanUndo() {
		t.Fatalf("nothing should be pushed")
	}
}

func TestModelAddUndo(t *testing.T) {
	m := newModel(t)
	if err := m.LoadSheet(exampleSheet()); err != nil {
		t.Fatal(err)
	}
	if !m.AddNote(1000, 35, false).Do() {
		t.Fatalf("add note should be enabled")
	}
	sel := m.Selection()
	if len(sel) != 1 {
		t.Fatalf("the new note should be the selection")
	}
	r := sel[0].(*geom.NoteRect)
	if r.Y() != 30 || r.Note().Pitch != 124 || r.Note().StartTick != 1000 || r.Width() != 100 {
		t.Fatalf("unexpected new note %v at y=%v", r.Note(), r.Y())
	}
	if !m.ChangedSinceSave() {
		t.Fatalf("adding a note should change the document")
	}
	m.Undo().Do()
	if m.ChangedSinceSave() || m.Composition().Len() != 5 {
		t.Fatalf("undo should get back to the saved document")
	}
	if m.AddNote(-1, 0, false).Enabled() {
		t.Errorf("adding a note at a negative tick should be disabled")
	}
}

func TestModelCopyPaste(t *testing.T) {
	m := newModel(t)
	if err := m.LoadSheet(exampleSheet()); err != nil {
		t.Fatal(err)
	}
	m.SelectAll().Do()
	m.Copy().Do()
	m.Paste().Do()
	if m.Composition().Len() != 10 {
		t.Fatalf("expected 10 notes after paste, got %d", m.Composition().Len())
	}
	if n := len(m.Selection()); n != 3 {
		t.Fatalf("the pasted rectangles should be the selection, got %d", n)
	}
	m.Cut().Do()
	if m.Composition().Len() != 5 {
		t.Fatalf("expected 5 notes after cut, got %d", m.Composition().Len())
	}
	m.Paste().Do()
	if m.Composition().Len() != 10 {
		t.Fatalf("expected 10 notes after the second paste, got %d", m.Composition().Len())
	}
}

func TestModelPasteGarbage(t *testing.T) {
	clip := &editor.MemoryClipboard{}
	clip.WriteAll("just some text")
	m := editor.NewModel(editor.DefaultPreferences(), clip, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Paste().Do()
	if m.History().CanUndo() || m.Alerts().Len() != 1 {
		t.Fatalf("pasting text should only alert")
	}
}

func TestModelGroupAlerts(t *testing.T) {
	m := newModel(t)
	if err := m.LoadSheet(&notecomp.Sheet{Items: []notecomp.Item{
		{X: 10, Y: 0, Width: 0, Instrument: "Piano", Selected: true},
	}}); err != nil {
		t.Fatal(err)
	}
	m.Group().Do()
	a, ok := m.Alerts().Last()
	if !ok || a.Priority != editor.Warning {
		t.Fatalf("a zero width group should warn, got %+v", a)
	}
	if !m.Ungroup().Enabled() {
		t.Fatalf("ungroup should be enabled with the group selected")
	}
}

type recorded struct {
	nodes    []geom.Node
	notes    map[*notecomp.Note]notecomp.Note
	selected map[geom.Rect]bool
	xw       map[geom.Rect][2]float64
}

func record(m *editor.Model) recorded {
	ret := recorded{
		nodes:    m.Surface().Nodes(),
		notes:    map[*notecomp.Note]notecomp.Note{},
		selected: map[geom.Rect]bool{},
		xw:       map[geom.Rect][2]float64{},
	}
	for _, n := range m.Composition().Notes() {
		ret.notes[n] = *n
	}
	for _, r := range m.Surface().Rects() {
		ret.selected[r] = r.Selected()
		ret.xw[r] = [2]float64{r.X(), r.Width()}
	}
	return ret
}

func TestModelFullUndo(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := newModel(t)
	if err := m.LoadSheet(exampleSheet()); err != nil {
		t.Fatal(err)
	}
	initial := record(m)
	x := func() float64 { return float64(rng.Intn(1000)) }
	y := func() float64 { return float64(rng.Intn(1280)) }
	gestures := []func() editor.Action{
		func() editor.Action { return m.AddNote(x(), y(), rng.Intn(2) == 0) },
		func() editor.Action { return m.Click(x(), y(), rng.Intn(2) == 0) },
		func() editor.Action {
			return m.SelectBox(geom.Bounds{X: x(), Y: y(), Width: x(), Height: y()}, rng.Intn(2) == 0)
		},
		m.SelectAll,
		m.ClearSelection,
		m.DeleteSelection,
		m.Group,
		m.Group,
		m.Ungroup,
		m.Copy,
		m.Cut,
		m.Paste,
		func() editor.Action { return m.Move(x()-500, float64(rng.Intn(11)-5)*10) },
		func() editor.Action { return m.Stretch(float64(rng.Intn(101) - 50)) },
		m.SameWidth,
		func() editor.Action { return m.SetInstrument(notecomp.Instruments[rng.Intn(len(notecomp.Instruments))]) },
		m.Undo,
		m.Redo,
	}
	for i := 0; i < 500; i++ {
		gestures[rng.Intn(len(gestures))]().Do()
	}
	for m.Undo().Do() {
	}
	final := record(m)
	if len(final.nodes) != len(initial.nodes) {
		t.Fatalf("%d nodes after undoing everything, expected %d", len(final.nodes), len(initial.nodes))
	}
	for i := range initial.nodes {
		if initial.nodes[i] != final.nodes[i] {
			t.Fatalf("node %d differs after undoing everything", i)
		}
	}
	if len(final.notes) != len(initial.notes) {
		t.Fatalf("%d notes after undoing everything, expected %d", len(final.notes), len(initial.notes))
	}
	for n, v := range initial.notes {
		if final.notes[n] != v {
			t.Errorf("note %v changed to %v", v, final.notes[n])
		}
	}
	for r, sel := range initial.selected {
		if final.selected[r] != sel {
			t.Errorf("rect %s: selected %v, expected %v", r.ID(), final.selected[r], sel)
		}
		if final.xw[r] != initial.xw[r] {
			t.Errorf("rect %s: x, width %v, expected %v", r.ID(), final.xw[r], initial.xw[r])
		}
	}
	if m.ChangedSinceSave() {
		t.Errorf("undoing everything should get back to the saved document")
	}
}

func TestModelMoveUpdatesNotes(t *testing.T) {
	m := newModel(t)
	if err := m.LoadSheet(exampleSheet()); err != nil {
		t.Fatal(err)
	}
	violin := func() *notecomp.Note {
		for _, n := range m.Composition().Notes() {
			if n.Instrument.Name == "Violin" {
				return n
			}
		}
		t.Fatalf("violin note missing")
		return nil
	}
	check := func(stage string, tick, pitch int) {
		t.Helper()
		if n := violin(); n.StartTick != tick || n.Pitch != pitch {
			t.Errorf("%s: expected tick %d pitch %d, got tick %d pitch %d", stage, tick, pitch, n.StartTick, n.Pitch)
		}
	}
	check("loaded", 150, 65)
	m.Move(50, -10).Do()
	check("moved", 200, 66)
	m.Undo().Do()
	check("undone", 150, 65)
	m.Redo().Do()
	check("redone", 200, 66)
	m.Stretch(25).Do()
	if n := violin(); n.Duration != 75 {
		t.Errorf("expected duration 75 after stretching, got %d", n.Duration)
	}
}
