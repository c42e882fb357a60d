/*
Package editor contains the data model of the note composer.

The Model holds the composition surface (the rectangles drawn on the
timeline/pitch grid), the composition's note set and the undo history. A user
interface never mutates the surface or the notes directly; it asks the Model
for an Action, e.g. model.AddNote(x, y, false) or model.Group(), and runs it
with Do(). Actions advertise whether they are enabled, so the interface can
e.g. gray out menu items.

Every Action that changes the document builds a Command: a reversible change
that captures, when it is built, exactly the state it needs to undo itself,
and mutates nothing until it is pushed to the History. The History applies the
command and keeps it for undo and redo.

Commands borrow the Model's Surface and Composition. They never copy them, so
resetting a document clears them in place.
*/
package editor
