package geom

// Epsilon is the smallest group width that is used as a scale basis. Groups
// narrower than this only translate their children.
const Epsilon = 1e-9

// Binding is the edge between a group and one of its direct children. The
// values are recorded when the group binds and never change afterwards;
// unbinding deletes the edge.
type Binding struct {
	Parent *GroupRect
	Child  Rect
	X0     float64 // child x when bound
	GX0    float64 // group x when bound
	W0     float64 // child width when bound
}

// Scale is the current group width relative to its initial width, or 1 if
// the initial width is degenerate.
func (b *Binding) Scale() float64 {
	basis := b.Parent.initialWidth
	if basis <= Epsilon {
		return 1
	}
	return b.Parent.Width() / basis
}

// X derives the child x: parentX + scale*(X0-GX0). It is evaluated as a
// correction to X0, so an untouched group gives back X0 exactly.
func (b *Binding) X() float64 {
	s := b.Scale()
	return b.X0 + (b.Parent.X() - b.GX0) + (s-1)*(b.X0-b.GX0)
}

func (b *Binding) Width() float64 {
	return b.W0 * b.Scale()
}
