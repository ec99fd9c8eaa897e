package ui

import (
	"fmt"
	"io"
	"os"
)

// Console is the headless presentation sink: each published status line is
// printed on its own line.
type Console struct {
	w io.Writer
}

// NewConsole creates a console sink writing to w, or stdout when w is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Publish prints the status line.
func (c *Console) Publish(text string) {
	fmt.Fprintln(c.w, text)
}
