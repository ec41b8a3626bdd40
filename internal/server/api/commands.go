package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/fingerdraw/internal/session"
)

// CommandHandler accepts drawing commands over HTTP and hands them to
// the loop.
type CommandHandler struct {
	send func(session.Command) bool
}

// NewCommandHandler creates a CommandHandler. send must not block.
func NewCommandHandler(send func(session.Command) bool) *CommandHandler {
	return &CommandHandler{send: send}
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Command string `json:"command"`
	Queued  bool   `json:"queued"`
}

// ServeHTTP handles POST /api/commands.
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cmd, err := session.ParseCommand(req.Command)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.send(cmd) {
		writeError(w, http.StatusServiceUnavailable, "Command queue full")
		return
	}

	writeJSON(w, http.StatusAccepted, commandResponse{Command: cmd.String(), Queued: true})
}
