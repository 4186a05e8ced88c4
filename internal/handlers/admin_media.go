package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"casinoreviews/internal/content"
	"casinoreviews/internal/models"
)

// uploadOverhead allows for multipart framing around the image bytes.
const uploadOverhead = 64 << 10

// mediaItem is a registry entry as shown in the media library.
type mediaItem struct {
	models.MediaImage
	SizeLabel string `json:"sizeLabel"`
}

// MediaList returns the registered images, most recently registered first.
func (a *Admin) MediaList(w http.ResponseWriter, r *http.Request) {
	images := a.svc.ListImages()
	items := make([]mediaItem, len(images))
	for i := range images {
		img := images[len(images)-1-i]
		items[i] = mediaItem{MediaImage: img, SizeLabel: img.HumanSize()}
	}
	writeJSON(w, http.StatusOK, items)
}

// MediaUpload accepts a multipart "file" field and stores it as an image.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	const limit = content.MaxImageSize + uploadOverhead
	if r.ContentLength > limit {
		writeJSON(w, http.StatusBadRequest, content.Result{Message: "File size must be less than 5MB"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusBadRequest, content.Result{Message: "File size must be less than 5MB"})
			return
		}
		writeJSON(w, http.StatusBadRequest, content.Result{Message: "No file provided"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, content.Result{Message: "No file provided"})
		return
	}
	defer file.Close()

	if header.Size > content.MaxImageSize {
		writeJSON(w, http.StatusBadRequest, content.Result{Message: "File size must be less than 5MB"})
		return
	}

	res := a.svc.UploadImage(r.Context(), header.Filename, file)
	if !res.Success {
		slog.Debug("image upload rejected", "filename", header.Filename, "message", res.Message)
	}
	writeResult(w, res)
}

// MediaDelete removes an image by file name.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	writeResult(w, a.svc.DeleteImage(r.Context(), chi.URLParam(r, "name")))
}
