// Package api provides HTTP API handlers for the mudra mirror.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/gallery"
)

// PhotosHandler handles HTTP requests for saved photos.
type PhotosHandler struct {
	gallery *gallery.Store
}

// NewPhotosHandler creates a new PhotosHandler with the given gallery.
func NewPhotosHandler(g *gallery.Store) *PhotosHandler {
	return &PhotosHandler{gallery: g}
}

// ServeHTTP implements the http.Handler interface and routes requests.
// Expected paths: /api/photos, /api/photos/{id}, /api/photos/{id}/thumb
func (h *PhotosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/photos")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/photos
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if len(parts) == 2 && parts[1] == "thumb" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.thumb(w, r, id)
		return
	}

	if len(parts) != 1 {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response types

type photoResponse struct {
	ID        string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"created_at"`
}

type listPhotosResponse struct {
	Photos []photoResponse `json:"photos"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a gallery.Photo to a photoResponse.
func toResponse(p *gallery.Photo) photoResponse {
	return photoResponse{
		ID:        p.ID,
		Width:     p.Width,
		Height:    p.Height,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/photos and returns all photo metadata.
func (h *PhotosHandler) list(w http.ResponseWriter, r *http.Request) {
	photos, err := h.gallery.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list photos")
		return
	}

	response := listPhotosResponse{
		Photos: make([]photoResponse, 0, len(photos)),
	}
	for _, p := range photos {
		response.Photos = append(response.Photos, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/photos/{id} and serves the full-resolution JPEG.
func (h *PhotosHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	data, err := h.gallery.Get(id)
	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get photo")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(data)
}

// thumb handles GET /api/photos/{id}/thumb and serves the WebP thumbnail.
func (h *PhotosHandler) thumb(w http.ResponseWriter, r *http.Request, id string) {
	data, err := h.gallery.Thumb(id)
	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get thumbnail")
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Write(data)
}

// delete handles DELETE /api/photos/{id} and removes a photo.
func (h *PhotosHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.gallery.Delete(id)
	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete photo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
