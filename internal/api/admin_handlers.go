package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type AdminTokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// @Summary      Admin panel login
// @Description  Authenticates an admin. Unlike the regular login the inactive and not-admin checks do not short-circuit; both reasons can come back in one error. Only an access token is issued.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Admin Credentials"
// @Success      200           {object}  AdminTokenResponse
// @Failure      400           {string}  string "Invalid request body"
// @Failure      404           {object}  apperr.Error "User doesn't exist"
// @Failure      422           {object}  apperr.Error "Incorrect password, inactive or not admin"
// @Router       /admin/login [post]
func (s *Server) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.users.LoginAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AdminTokenResponse{AccessToken: token})
}

// @Summary      List users (admin)
// @Description  Admin-panel listing of all user records.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.User
// @Failure      401  {object}  apperr.Error "Not an active superuser"
// @Router       /admin/users [get]
func (s *Server) AdminListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// @Summary      List files (admin)
// @Description  Admin-panel listing of all file records, including soft-deleted ones.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.File
// @Failure      401  {object}  apperr.Error "Not an active superuser"
// @Router       /admin/files [get]
func (s *Server) AdminListFilesHandler(w http.ResponseWriter, r *http.Request) {
	files, err := s.files.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, files)
}

// @Summary      Soft-delete a file (admin)
// @Description  Marks a file record deleted; the stored object is untouched.
// @Tags         admin
// @Security     BearerAuth
// @Param        fileId  path  int  true  "File id"
// @Success      204  {null}    nil "No Content"
// @Failure      400  {string}  string "Invalid file id"
// @Failure      401  {object}  apperr.Error "Not an active superuser"
// @Failure      404  {object}  apperr.Error "File doesn't exist"
// @Router       /admin/files/{fileId} [delete]
func (s *Server) AdminDeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID, err := strconv.ParseInt(chi.URLParam(r, "fileId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid file id", http.StatusBadRequest)
		return
	}

	if err := s.files.SoftDelete(r.Context(), fileID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
