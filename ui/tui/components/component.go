package components

// Component is a widget owned by MainModel. The model feeds it data and
// sizes it; View renders the current frame.
type Component interface {
	Resize(width, height int)
	View() string
}
