// Package listing renders human readable listings of compositions with
// text/template and the sprig function map.
package listing

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/geom"
	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.txt
var defaultTemplates embed.FS

type Lister struct {
	Template  *template.Template
	RowHeight float64
}

// Data is what the templates are executed with.
type Data struct {
	Title     string
	Items     []notecomp.Item
	NumNotes  int
	RowHeight float64
}

// New returns a Lister using the built-in templates.
func New(rowHeight float64) (*Lister, error) {
	tmpl, err := base().ParseFS(defaultTemplates, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("could not parse the built-in templates: %w", err)
	}
	return &Lister{Template: tmpl, RowHeight: rowHeight}, nil
}

// NewFromTemplates returns a Lister using the templates in a directory. The
// directory must define a template named "listing.txt".
func NewFromTemplates(rowHeight float64, templateDirectory string) (*Lister, error) {
	tmpl, err := base().ParseGlob(filepath.Join(templateDirectory, "*.*"))
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %w`, templateDirectory, err)
	}
	return &Lister{Template: tmpl, RowHeight: rowHeight}, nil
}

func base() *template.Template {
	title := cases.Title(language.English)
	return template.New("base").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
		"heading": title.String,
		"pitch": func(y, rowHeight float64) int {
			return geom.PitchAt(y, rowHeight)
		},
		"noteName": func(pitch int) string {
			return midi.Note(uint8(pitch)).String()
		},
	})
}

// Render writes the listing of the sheet.
func (l *Lister) Render(w io.Writer, title string, sheet *notecomp.Sheet) error {
	data := Data{Title: title, Items: sheet.Items, NumNotes: sheet.NumNotes(), RowHeight: l.RowHeight}
	var buf bytes.Buffer
	if err := l.Template.ExecuteTemplate(&buf, "listing.txt", data); err != nil {
		return fmt.Errorf(`could not execute template "listing.txt": %w`, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
