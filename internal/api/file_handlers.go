package api

import (
	"net/http"
)

// @Summary      Upload a file
// @Description  Uploads a file to object storage and records its public URL.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File to upload"
// @Success      201   {object}  models.File
// @Failure      400   {string}  string "Bad multipart form"
// @Failure      401   {object}  apperr.Error "Unauthorized"
// @Failure      500   {string}  string "Upload failed"
// @Router       /files [post]
func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<30)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Error parsing multipart form", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := handler.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploaded, err := s.files.Upload(r.Context(), handler.Filename, contentType, file)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, uploaded)
}

// @Summary      List files
// @Description  Returns all uploaded file records.
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.File
// @Failure      401  {object}  apperr.Error "Unauthorized"
// @Router       /files [get]
func (s *Server) ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	files, err := s.files.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, files)
}
