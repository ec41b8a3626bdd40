package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/fingerdraw/internal/session"
)

func TestCommandHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		accept     bool
		wantStatus int
		wantSent   []session.Command
	}{
		{name: "clear", method: http.MethodPost, body: `{"command":"clear"}`, accept: true, wantStatus: http.StatusAccepted, wantSent: []session.Command{session.CmdClear}},
		{name: "brush up", method: http.MethodPost, body: `{"command":"brush_up"}`, accept: true, wantStatus: http.StatusAccepted, wantSent: []session.Command{session.CmdBrushUp}},
		{name: "quit", method: http.MethodPost, body: `{"command":"quit"}`, accept: true, wantStatus: http.StatusAccepted, wantSent: []session.Command{session.CmdQuit}},
		{name: "unknown command", method: http.MethodPost, body: `{"command":"purple"}`, accept: true, wantStatus: http.StatusBadRequest},
		{name: "none is not a command", method: http.MethodPost, body: `{"command":"none"}`, accept: true, wantStatus: http.StatusBadRequest},
		{name: "invalid json", method: http.MethodPost, body: `{`, accept: true, wantStatus: http.StatusBadRequest},
		{name: "queue full", method: http.MethodPost, body: `{"command":"red"}`, accept: false, wantStatus: http.StatusServiceUnavailable, wantSent: []session.Command{session.CmdRed}},
		{name: "get not allowed", method: http.MethodGet, accept: true, wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent []session.Command
			handler := NewCommandHandler(func(c session.Command) bool {
				sent = append(sent, c)
				return tt.accept
			})

			req := httptest.NewRequest(tt.method, "/api/commands", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if len(sent) != len(tt.wantSent) {
				t.Fatalf("sent = %v, want %v", sent, tt.wantSent)
			}
			for i := range sent {
				if sent[i] != tt.wantSent[i] {
					t.Errorf("sent[%d] = %v, want %v", i, sent[i], tt.wantSent[i])
				}
			}

			if rec.Code == http.StatusAccepted {
				var resp commandResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if !resp.Queued || resp.Command != tt.wantSent[0].String() {
					t.Errorf("response = %+v", resp)
				}
			}
		})
	}
}
