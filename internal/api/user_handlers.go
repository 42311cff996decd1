package api

import (
	"encoding/json"
	"net/http"

	"backend-boilerplate/internal/service"
)

// @Summary      Get current user
// @Description  Returns the user resolved from the access token.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  apperr.Error "Unauthorized"
// @Router       /me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// @Summary      Update current user
// @Description  Overwrites only the supplied fields; omitted or null fields keep their stored values. A supplied password is re-hashed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        updateRequest  body      service.UpdateUserParams  true  "Fields to update"
// @Success      200            {object}  models.User
// @Failure      400            {string}  string "Invalid request body"
// @Failure      401            {object}  apperr.Error "Unauthorized"
// @Failure      422            {object}  apperr.Error "Email already taken"
// @Router       /me [patch]
func (s *Server) UpdateCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var params service.UpdateUserParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := s.users.Update(r.Context(), user, params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// @Summary      Delete current user
// @Description  Permanently removes the authenticated user's record.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  apperr.Error "Unauthorized"
// @Router       /me [delete]
func (s *Server) DeleteCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	message, err := s.users.Delete(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// @Summary      List users
// @Description  Returns all users ordered by id.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.User
// @Failure      401  {object}  apperr.Error "Unauthorized"
// @Router       /users [get]
func (s *Server) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}
