package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDisplay records shown frames and replays scripted key presses.
type MockDisplay struct {
	mu     sync.Mutex
	keys   []int
	shown  int
	last   gocv.Mat
	closed bool
}

// NewMockDisplay returns a display whose PollKey yields keys in order,
// then NoKey.
func NewMockDisplay(keys ...int) *MockDisplay {
	return &MockDisplay{keys: keys, last: gocv.NewMat()}
}

// PushKeys appends key presses.
func (m *MockDisplay) PushKeys(keys ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, keys...)
}

// Show keeps a copy of img.
func (m *MockDisplay) Show(img gocv.Mat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown++
	img.CopyTo(&m.last)
}

// PollKey returns the next scripted key.
func (m *MockDisplay) PollKey() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.keys) == 0 {
		return NoKey
	}
	k := m.keys[0]
	m.keys = m.keys[1:]
	return k
}

// Close marks the display closed. The kept frame stays readable until Release.
func (m *MockDisplay) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Shown returns how many frames were shown.
func (m *MockDisplay) Shown() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shown
}

// Closed reports whether Close was called.
func (m *MockDisplay) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Last returns a clone of the most recently shown frame.
func (m *MockDisplay) Last() gocv.Mat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last.Clone()
}

// Release frees the kept frame.
func (m *MockDisplay) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last.Close()
}
