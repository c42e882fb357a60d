package editor

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/vsariola/notecomp"
	"gopkg.in/yaml.v3"
)

// Clipboard is where copied rectangles go, as the YAML of a notecomp.Sheet.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the clipboard of the operating system.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// MemoryClipboard keeps the copied text in the process.
type MemoryClipboard struct {
	text string
}

func (c *MemoryClipboard) ReadAll() (string, error) { return c.text, nil }
func (c *MemoryClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

// NewClipboard returns the system clipboard for "system", if the platform
// has one, and a MemoryClipboard otherwise.
func NewClipboard(kind string) Clipboard {
	if kind == "system" && !clipboard.Unsupported {
		return SystemClipboard{}
	}
	return &MemoryClipboard{}
}

var ErrNoNotesInClipboard = errors.New("clipboard does not contain notes")

func encodeClipboard(sheet *notecomp.Sheet) (string, error) {
	b, err := yaml.Marshal(sheet)
	if err != nil {
		return "", fmt.Errorf("marshaling clipboard contents: %w", err)
	}
	return string(b), nil
}

func decodeClipboard(text string) (*notecomp.Sheet, error) {
	var sheet notecomp.Sheet
	if err := yaml.Unmarshal([]byte(text), &sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoNotesInClipboard, err)
	}
	if len(sheet.Items) == 0 {
		return nil, ErrNoNotesInClipboard
	}
	if err := sheet.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoNotesInClipboard, err)
	}
	return &sheet, nil
}
