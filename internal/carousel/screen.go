package carousel

// Screen wires one Session to its Synchronizer and Coordinator.
type Screen struct {
	Session     *Session
	Sync        *Synchronizer
	Coordinator *Coordinator
}

func NewScreen(opts ...Option) *Screen {
	s := NewSession(opts...)
	y := NewSynchronizer(s)
	return &Screen{
		Session:     s,
		Sync:        y,
		Coordinator: NewCoordinator(s, y),
	}
}

// State is shorthand for Session.Snapshot.
func (sc *Screen) State() State {
	return sc.Session.Snapshot()
}
