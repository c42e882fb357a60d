package geom

import (
	"errors"
	"fmt"
)

// ErrEmptySelection is returned when a group would have no members.
var ErrEmptySelection = errors.New("no rectangles selected")

// AlreadyBoundWarning reports a rectangle left out of a new group because it
// already belongs to another one.
type AlreadyBoundWarning struct {
	Rect Rect
}

func (w *AlreadyBoundWarning) Error() string {
	return fmt.Sprintf("rectangle %s already belongs to a group and was left out", w.Rect.ID().String()[:8])
}

// DegenerateGeometryError reports a group too narrow to scale its children;
// such a group only translates them.
type DegenerateGeometryError struct {
	Width float64
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("group width %g is too small to scale its contents", e.Width)
}
