package editor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vsariola/notecomp"
	"gopkg.in/yaml.v3"
)

// ReadSheet loads a composition file, YAML or JSON, replacing the document.
// Problems are reported both as alerts and as the returned error.
func (m *Model) ReadSheet(r io.ReadCloser) error {
	b, err := io.ReadAll(r)
	if err != nil {
		r.Close()
		return m.fileError("Error reading a composition file", err)
	}
	if err := r.Close(); err != nil {
		return m.fileError("Error reading a composition file", err)
	}
	var sheet notecomp.Sheet
	if errJSON := json.Unmarshal(b, &sheet); errJSON != nil {
		if errYaml := yaml.Unmarshal(b, &sheet); errYaml != nil {
			return m.fileError("Error unmarshaling a composition file", fmt.Errorf("%v / %v", errYaml, errJSON))
		}
	}
	if err := m.LoadSheet(&sheet); err != nil {
		return m.fileError("Error loading a composition file", err)
	}
	if f, ok := r.(*os.File); ok {
		m.filePath = f.Name()
	}
	return nil
}

// WriteSheet writes the document as YAML, or as JSON if w is a file with a
// .json extension, and marks the document saved.
func (m *Model) WriteSheet(w io.WriteCloser) error {
	path := ""
	if f, ok := w.(*os.File); ok {
		path = f.Name()
	}
	var contents []byte
	var err error
	if filepath.Ext(path) == ".json" {
		contents, err = json.MarshalIndent(m.Sheet(), "", "  ")
	} else {
		contents, err = yaml.Marshal(m.Sheet())
	}
	if err != nil {
		w.Close()
		return m.fileError("Error marshaling a composition file", err)
	}
	if _, err := w.Write(contents); err != nil {
		w.Close()
		return m.fileError("Error writing to file", err)
	}
	if err := w.Close(); err != nil {
		return m.fileError("Error writing to file", err)
	}
	if path != "" {
		m.filePath = path
	}
	m.history.MarkSaved()
	m.logger.Debug("wrote sheet", "path", path, "bytes", len(contents))
	return nil
}

func (m *Model) fileError(msg string, err error) error {
	m.alerts.Add(fmt.Sprintf("%s: %v", msg, err), Error)
	return fmt.Errorf("%s: %w", msg, err)
}
