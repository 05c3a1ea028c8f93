package port

type Sink interface {
	// Redraw the whole view
	WriteScreen(screen string) error
	// Normal newline (for logs)
	NewLine() error
}
