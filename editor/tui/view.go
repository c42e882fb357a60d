package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/editor"
	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/exp/slices"
)

var (
	instrumentColors = []lipgloss.Color{"39", "208", "226", "135", "46", "214", "196", "33"}

	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	octaveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	noteStyles    []lipgloss.Style
	selectedStyle []lipgloss.Style
)

func init() {
	for _, c := range instrumentColors {
		noteStyles = append(noteStyles, lipgloss.NewStyle().Foreground(c))
		selectedStyle = append(selectedStyle, lipgloss.NewStyle().Background(c).Foreground(lipgloss.Color("0")).Bold(true))
	}
}

type cell struct {
	note     bool
	start    bool
	selected bool
	channel  int
}

func (t *Model) View() string {
	cols, rows := t.gridCols(), t.gridRows()
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}
	h := t.editor.Preferences().NoteHeight
	for _, r := range t.editor.Surface().NoteRects() {
		row := int(math.Floor(r.Y()/h)) - t.scrollRow
		if row < 0 || row >= rows {
			continue
		}
		first := int(math.Floor(r.X()/t.ticksPerCol)) - t.scrollCol
		last := int(math.Ceil((r.X()+r.Width())/t.ticksPerCol)) - t.scrollCol
		last = max(last, first+1)
		for c := max(first, 0); c < min(last, cols); c++ {
			grid[row][c] = cell{note: true, start: c == first, selected: r.Selected(), channel: r.Note().Instrument.Channel}
		}
	}
	var b strings.Builder
	for i, line := range grid {
		pitch := notecomp.MaxPitch - (t.scrollRow + i)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, midi.Note(uint8(pitch)).String())))
		for j, c := range line {
			b.WriteString(t.renderCell(c, pitch, i+t.scrollRow == t.cursorRow && j+t.scrollCol == t.cursorCol))
		}
		b.WriteByte('\n')
	}
	b.WriteString(statusStyle.MaxWidth(t.width).Render(fmt.Sprintf("%-*s", t.width, t.status())))
	b.WriteByte('\n')
	b.WriteString(t.alertLine())
	return b.String()
}

func (t *Model) renderCell(c cell, pitch int, cursor bool) string {
	ch := " "
	style := lipgloss.NewStyle()
	switch {
	case c.note:
		ch = "━"
		if c.start {
			ch = "┣"
		}
		i := c.channel % len(instrumentColors)
		style = noteStyles[i]
		if c.selected {
			style = selectedStyle[i]
		}
	case pitch%12 == 0:
		ch = "·"
		style = octaveStyle
	}
	if cursor {
		style = style.Copy().Inherit(cursorStyle)
	}
	return style.Render(ch)
}

func (t *Model) status() string {
	e := t.editor
	dirty := ""
	if e.ChangedSinceSave() {
		dirty = "*"
	}
	path := e.FilePath()
	if path == "" {
		path = t.savePath
	}
	c := e.Composition()
	return fmt.Sprintf(" %s%s  tick %d  %s  notes %d  selected %d  length %d  undo %d",
		path, dirty,
		int(t.cursorX()),
		e.Instrument().Name,
		c.Len(),
		len(c.SelectedNotes()),
		c.LengthInTicks(),
		e.History().UndoDepth())
}

// alertLine renders the alert stack newest first, so the latest message is
// the one that survives when the line is cut to the terminal width.
func (t *Model) alertLine() string {
	var parts []string
	for _, a := range t.editor.Alerts().Iterate {
		parts = append(parts, alertStyle(a).Render(a.Message))
	}
	slices.Reverse(parts)
	return lipgloss.NewStyle().MaxWidth(t.width).Render(strings.Join(parts, "  "))
}

func alertStyle(a editor.Alert) lipgloss.Style {
	style := infoStyle
	switch a.Priority {
	case editor.Warning:
		style = warningStyle
	case editor.Error:
		style = errorStyle
	}
	if a.FadeLevel < 0.5 {
		style = style.Copy().Faint(true)
	}
	return style
}
