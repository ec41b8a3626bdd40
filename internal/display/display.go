// Package display shows composited frames in a desktop window and
// reports key presses.
package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// KeyWaitMs is how long PollKey waits for a key press.
const KeyWaitMs = 1

// NoKey is returned by PollKey when nothing was pressed.
const NoKey = -1

// Display renders frames and is the source of key presses.
type Display interface {
	Show(img gocv.Mat)
	// PollKey waits up to KeyWaitMs and returns the key code or NoKey.
	PollKey() int
	Close() error
}

// Window is a Display backed by an OpenCV HighGUI window.
type Window struct {
	window *gocv.Window
	mu     sync.Mutex
}

// NewWindow opens a window with the given title.
func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

// Show draws img in the window.
func (w *Window) Show(img gocv.Mat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.window == nil {
		return
	}
	w.window.IMShow(img)
}

// PollKey pumps window events and returns the pressed key, if any.
func (w *Window) PollKey() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.window == nil {
		return NoKey
	}
	return w.window.WaitKey(KeyWaitMs)
}

// Close destroys the window. Calling it twice is safe.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}
