package httpx

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akshayam/wellness-store.git/internal/files"
)

type FilesHandler struct {
	Repo     *files.Repo
	MaxBytes int64
}

func (h *FilesHandler) Register(r chi.Router) {
	r.Get("/images/{id}", h.serveInline)
	r.Get("/pdfs/{id}", h.serveInline)
}

func (h *FilesHandler) RegisterAdmin(r chi.Router) {
	r.Post("/upload", h.upload)
}

func (h *FilesHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "reading upload")
		return
	}

	ct := hdr.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	id, err := h.Repo.Save(r.Context(), hdr.Filename, ct, data)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	prefix := "/images/"
	if ct == "application/pdf" {
		prefix = "/pdfs/"
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"file_id": id,
		"url":     prefix + id,
	})
}

// serveInline streams the blob with its stored content type; inline
// disposition so browsers render PDFs instead of downloading them.
func (h *FilesHandler) serveInline(w http.ResponseWriter, r *http.Request) {
	f, err := h.Repo.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "File not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", f.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(f.Data)))
	_, _ = w.Write(f.Data)
}
