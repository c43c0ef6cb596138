package render

import (
	"io"

	"github.com/muesli/termenv"
)

// Frames repaints successive frames in place: the first Write hides the
// cursor and clears the screen, every Write homes the cursor before
// emitting the frame, and Close restores the cursor. Writing plain frames
// to a non-terminal writer works too; the escape sequences are simply
// part of the stream.
type Frames struct {
	out     *termenv.Output
	started bool
	closed  bool
}

// NewFrames wraps out for in-place frame repainting.
func NewFrames(out *termenv.Output) *Frames {
	return &Frames{out: out}
}

// Output returns the underlying terminal output.
func (f *Frames) Output() *termenv.Output { return f.out }

// Write emits one frame at the top-left corner of the screen.
func (f *Frames) Write(frame string) error {
	if f.closed {
		return nil
	}
	if !f.started {
		f.out.HideCursor()
		f.out.ClearScreen()
		f.started = true
	}
	f.out.MoveCursor(1, 1)
	_, err := io.WriteString(f.out, frame)
	return err
}

// Close restores the cursor. Later writes are dropped.
func (f *Frames) Close() {
	if f.closed {
		return
	}
	if f.started {
		f.out.ShowCursor()
	}
	f.closed = true
}
