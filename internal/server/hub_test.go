package server

import (
	"encoding/json"
	"testing"

	"github.com/ayusman/fingerdraw/internal/app"
)

func TestHub_Frame(t *testing.T) {
	h := NewHub(nil)

	frame, next := h.Frame()
	if frame != nil {
		t.Errorf("initial frame = %v, want nil", frame)
	}

	h.PublishFrame([]byte("one"))

	select {
	case <-next:
	default:
		t.Fatal("publish should wake waiters")
	}

	frame, next = h.Frame()
	if string(frame) != "one" {
		t.Errorf("frame = %q, want %q", frame, "one")
	}
	select {
	case <-next:
		t.Fatal("new channel closed before the next frame")
	default:
	}
}

func TestHub_Active(t *testing.T) {
	h := NewHub(nil)
	if h.Active() {
		t.Error("no viewers yet")
	}

	h.addViewer()
	h.addViewer()
	h.removeViewer()
	if !h.Active() {
		t.Error("one viewer remains")
	}

	h.removeViewer()
	if h.Active() {
		t.Error("all viewers gone")
	}
}

func TestHub_PublishEvent(t *testing.T) {
	h := NewHub(nil)
	a := h.register()
	b := h.register()

	if h.Clients() != 2 {
		t.Fatalf("Clients() = %d, want 2", h.Clients())
	}

	h.PublishEvent(app.Event{Type: app.EventCommand, Command: "clear", Color: "green", Thickness: 5})

	for _, c := range []*client{a, b} {
		select {
		case msg := <-c.send:
			var ev app.Event
			if err := json.Unmarshal(msg, &ev); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if ev.Command != "clear" || ev.Color != "green" {
				t.Errorf("event = %+v", ev)
			}
		default:
			t.Error("client did not receive the event")
		}
	}

	h.unregister(a)
	h.unregister(a)
	if h.Clients() != 1 {
		t.Errorf("Clients() = %d, want 1", h.Clients())
	}
	if _, ok := <-a.send; ok {
		t.Error("send channel should be closed")
	}
}

func TestHub_SlowClientDropsEvents(t *testing.T) {
	h := NewHub(nil)
	c := h.register()

	for i := 0; i < clientBuffer+10; i++ {
		h.PublishEvent(app.Event{Type: app.EventSegment})
	}

	if len(c.send) != clientBuffer {
		t.Errorf("queued = %d, want %d", len(c.send), clientBuffer)
	}
}
