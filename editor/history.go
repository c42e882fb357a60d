package editor

// History is the undo/redo stack pair of a document. Commands are applied
// when pushed and kept for undo; undone commands wait in the redo stack until
// they are redone or a new command is pushed.
//
// The saved marker is the undo depth at which the document was last saved;
// -1 means that state can no longer be reached.
type History struct {
	undoStack   []Command
	redoStack   []Command
	savedMarker int
	maxUndo     int
}

// NewHistory returns an empty history that keeps at most maxUndo commands
// for undo. maxUndo <= 0 means no limit.
func NewHistory(maxUndo int) *History {
	return &History{maxUndo: maxUndo}
}

// Push applies the command and makes it the most recent undoable command.
// The redo stack is discarded.
func (h *History) Push(c Command) {
	c.Redo()
	if len(h.redoStack) > 0 && h.savedMarker > len(h.undoStack) {
		h.savedMarker = -1
	}
	clear(h.redoStack)
	h.redoStack = h.redoStack[:0]
	h.undoStack = append(h.undoStack, c)
	if h.maxUndo > 0 && len(h.undoStack) > h.maxUndo {
		n := len(h.undoStack) - h.maxUndo
		copy(h.undoStack, h.undoStack[n:])
		clear(h.undoStack[h.maxUndo:])
		h.undoStack = h.undoStack[:h.maxUndo]
		if h.savedMarker >= 0 {
			h.savedMarker -= n
			if h.savedMarker < 0 {
				h.savedMarker = -1
			}
		}
	}
}

// Undo reverts the most recent command. It returns false, and does nothing,
// if there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}
	c := h.undoStack[len(h.undoStack)-1]
	h.undoStack[len(h.undoStack)-1] = nil
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	c.Undo()
	h.redoStack = append(h.redoStack, c)
	return true
}

// Redo reapplies the most recently undone command. It returns false, and
// does nothing, if there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	c := h.redoStack[len(h.redoStack)-1]
	h.redoStack[len(h.redoStack)-1] = nil
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	c.Redo()
	h.undoStack = append(h.undoStack, c)
	return true
}

func (h *History) CanUndo() bool  { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool  { return len(h.redoStack) > 0 }
func (h *History) UndoDepth() int { return len(h.undoStack) }
func (h *History) RedoDepth() int { return len(h.redoStack) }

// IsSaved reports whether the document is in the state it was when
// MarkSaved was last called.
func (h *History) IsSaved() bool {
	return len(h.undoStack) == h.savedMarker
}

func (h *History) MarkSaved() {
	h.savedMarker = len(h.undoStack)
}

// Clear forgets every command and marks the empty history saved.
func (h *History) Clear() {
	clear(h.undoStack)
	clear(h.redoStack)
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
	h.savedMarker = 0
}
