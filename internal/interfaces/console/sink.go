package console

import (
	"fmt"
	"io"
	"os"

	"fxwatch/internal/application/port"
)

const ansiClearScreen = "\033[H\033[2J"

type Sink struct {
	out io.Writer
}

func NewSink() port.Sink { return &Sink{out: os.Stdout} }

func NewSinkWriter(w io.Writer) *Sink { return &Sink{out: w} }

// WriteScreen clears the terminal and draws screen from the top left.
func (s *Sink) WriteScreen(screen string) error {
	_, err := fmt.Fprint(s.out, ansiClearScreen+screen)
	return err
}

func (s *Sink) NewLine() error {
	_, err := fmt.Fprint(s.out, "\n")
	return err
}
