package editor

type (
	// Action describes a user gesture on the model, performed by calling the
	// Do() method. It is usually initiated by a key press or a menu item.
	// Action advertises whether it is enabled, so UI can e.g. gray out menu
	// items when the gesture is not allowed. The underlying Doer can
	// optionally implement the Enabler interface; if it does not, the action
	// is always allowed.
	Action struct {
		doer Doer
	}

	// Doer is an interface that defines a single Do() method, which is called
	// when an action is performed.
	Doer interface {
		Do()
	}

	// Enabler is an interface that defines a single Enabled() method, which
	// is used by the UI to check if an Action is enabled or not.
	Enabler interface {
		Enabled() bool
	}
)

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

// Do performs the action if it is enabled and reports whether it did.
func (a Action) Do() bool {
	if !a.Enabled() {
		return false
	}
	a.doer.Do()
	return true
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false // no doer, not allowed
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true // not enabler, always allowed
	}
	return e.Enabled()
}
