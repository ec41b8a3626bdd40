package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/fingerdraw/internal/store"
)

// SnapshotHandler serves the snapshot gallery.
type SnapshotHandler struct {
	store *store.Store
}

// NewSnapshotHandler creates a SnapshotHandler backed by s.
func NewSnapshotHandler(s *store.Store) *SnapshotHandler {
	return &SnapshotHandler{store: s}
}

// ServeHTTP routes /api/snapshots and /api/snapshots/{id}.
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/snapshots")
	id := strings.TrimPrefix(path, "/")

	if id == "" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.list(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.image(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type snapshotResponse struct {
	ID        string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Color     string `json:"color"`
	Thickness int    `json:"thickness"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

type listSnapshotsResponse struct {
	Snapshots []snapshotResponse `json:"snapshots"`
}

func toSnapshotResponse(sn *store.Snapshot) snapshotResponse {
	return snapshotResponse{
		ID:        sn.ID,
		Width:     sn.Width,
		Height:    sn.Height,
		Color:     sn.Color,
		Thickness: sn.Thickness,
		URL:       "/api/snapshots/" + sn.ID,
		CreatedAt: formatTime(sn.CreatedAt),
	}
}

// list handles GET /api/snapshots, newest first.
func (h *SnapshotHandler) list(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.store.Snapshots().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list snapshots")
		return
	}

	response := listSnapshotsResponse{
		Snapshots: make([]snapshotResponse, 0, len(snapshots)),
	}
	for _, sn := range snapshots {
		response.Snapshots = append(response.Snapshots, toSnapshotResponse(sn))
	}

	writeJSON(w, http.StatusOK, response)
}

// image handles GET /api/snapshots/{id} and returns the PNG.
func (h *SnapshotHandler) image(w http.ResponseWriter, r *http.Request, id string) {
	sn, err := h.store.Snapshots().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snapshot not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get snapshot")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(sn.Image)))
	w.WriteHeader(http.StatusOK)
	w.Write(sn.Image)
}

// delete handles DELETE /api/snapshots/{id}.
func (h *SnapshotHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Snapshots().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snapshot not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete snapshot")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
