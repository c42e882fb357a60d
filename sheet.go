package notecomp

import (
	"errors"
	"fmt"
)

type (
	// Sheet is the exchange form of a set of rectangles: what is written to
	// composition files and to the clipboard. Items are the top level
	// rectangles; groups nest their children.
	Sheet struct {
		Items []Item `yaml:",omitempty"`
	}

	// Item is either a note rectangle or, when Group is non-empty, a group of
	// items. For groups, the geometry fields are ignored on read, as the group
	// bounds are always recomputed from the children.
	Item struct {
		ID         string  `yaml:",omitempty"`
		X          float64 `yaml:",omitempty"`
		Y          float64 `yaml:",omitempty"`
		Width      float64 `yaml:",omitempty"`
		Instrument string  `yaml:",omitempty"`
		Selected   bool    `yaml:",omitempty"`
		Group      []Item  `yaml:",omitempty"`
	}
)

var ErrEmptyGroup = errors.New("group item has no children")

// IsGroup reports whether the item is a group.
func (i Item) IsGroup() bool {
	return len(i.Group) > 0
}

// Validate checks that every note item names a known instrument and has a
// non-negative geometry.
func (s *Sheet) Validate() error {
	for i := range s.Items {
		if err := s.Items[i].validate(fmt.Sprintf("items[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (i *Item) validate(path string) error {
	if i.Group != nil && len(i.Group) == 0 {
		return fmt.Errorf("%s: %w", path, ErrEmptyGroup)
	}
	if i.IsGroup() {
		for j := range i.Group {
			if err := i.Group[j].validate(fmt.Sprintf("%s.group[%d]", path, j)); err != nil {
				return err
			}
		}
		return nil
	}
	if _, ok := InstrumentByName(i.Instrument); !ok {
		return fmt.Errorf("%s: unknown instrument %q", path, i.Instrument)
	}
	if i.X < 0 || i.Y < 0 || i.Width < 0 {
		return fmt.Errorf("%s: negative geometry (%g, %g, %g)", path, i.X, i.Y, i.Width)
	}
	return nil
}

// NumNotes counts the note items, nested ones included.
func (s *Sheet) NumNotes() int {
	n := 0
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, it := range items {
			if it.IsGroup() {
				walk(it.Group)
			} else {
				n++
			}
		}
	}
	walk(s.Items)
	return n
}
