package server

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/fingerdraw/internal/app"
)

func readPart(t *testing.T, r *textproto.Reader) []byte {
	t.Helper()

	line, err := r.ReadLine()
	if err != nil {
		t.Fatalf("read boundary: %v", err)
	}
	if line != "--frame" {
		t.Fatalf("boundary = %q", line)
	}

	header, err := r.ReadMIMEHeader()
	if err != nil {
		t.Fatalf("read part header: %v", err)
	}
	if header.Get("Content-Type") != "image/jpeg" {
		t.Errorf("part Content-Type = %q", header.Get("Content-Type"))
	}
	n, err := strconv.Atoi(header.Get("Content-Length"))
	if err != nil {
		t.Fatalf("part Content-Length: %v", err)
	}

	body := make([]byte, n+2)
	if _, err := io.ReadFull(r.R, body); err != nil {
		t.Fatalf("read part body: %v", err)
	}
	return body[:n]
}

func TestStreamHandler(t *testing.T) {
	hub := NewHub(nil)
	hub.PublishFrame([]byte("first"))

	ts := httptest.NewServer(New(Config{Hub: hub}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("GET /api/stream error = %v", err)
	}
	defer resp.Body.Close()

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "multipart/x-mixed-replace") {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if !hub.Active() {
		t.Error("hub should report a viewer")
	}

	r := textproto.NewReader(bufio.NewReader(resp.Body))

	if got := readPart(t, r); string(got) != "first" {
		t.Errorf("first part = %q", got)
	}

	hub.PublishFrame([]byte("second"))
	if got := readPart(t, r); string(got) != "second" {
		t.Errorf("second part = %q", got)
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Active() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Active() {
		t.Error("viewer not removed after disconnect")
	}
}

func TestStreamHandler_MethodNotAllowed(t *testing.T) {
	s := New(Config{Hub: NewHub(nil)})

	req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestEventsHandler(t *testing.T) {
	hub := NewHub(nil)
	ts := httptest.NewServer(New(Config{Hub: hub}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Clients() != 1 {
		t.Fatalf("Clients() = %d, want 1", hub.Clients())
	}

	hub.PublishEvent(app.Event{
		Type:      app.EventSegment,
		Color:     "red",
		Thickness: 7,
		From:      &app.Point{X: 1, Y: 2},
		To:        &app.Point{X: 3, Y: 4},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev app.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if ev.Type != app.EventSegment || ev.Color != "red" || ev.Thickness != 7 {
		t.Errorf("event = %+v", ev)
	}
	if ev.To == nil || *ev.To != (app.Point{X: 3, Y: 4}) {
		t.Errorf("To = %v", ev.To)
	}

	conn.Close()
	deadline = time.Now().Add(2 * time.Second)
	for hub.Clients() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Clients() != 0 {
		t.Error("client not removed after close")
	}
}
