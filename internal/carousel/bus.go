package carousel

// Event is anything published on a Bus.
type Event interface {
	event()
}

// SelectionChanged is published after every committed change to the state.
type SelectionChanged struct {
	State  State
	Source Source
}

// ScrollRequested asks the layout layer to animate card Target into view.
// A request with a higher Seq supersedes any earlier one.
type ScrollRequested struct {
	Request ScrollRequest
}

// ReloadRequested asks the data layer to refetch dependent data.
type ReloadRequested struct {
	Reload Reload
}

// ReloadFailed reports a fetch error for the current generation.
type ReloadFailed struct {
	Generation uint64
	Err        error
}

func (SelectionChanged) event() {}
func (ScrollRequested) event()  {}
func (ReloadRequested) event()  {}
func (ReloadFailed) event()     {}

type subscriber struct {
	id int
	fn func(Event)
}

// Bus is a synchronous fan-out of events. Handlers run on the publishing
// goroutine, in subscription order; it is not safe for concurrent use.
type Bus struct {
	next int
	subs []subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *Bus) Publish(e Event) {
	// Handlers may unsubscribe while we iterate.
	subs := append([]subscriber(nil), b.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}
