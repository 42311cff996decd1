package api

import (
	"encoding/json"
	"net/http"
)

type SignupRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

type MessageResponse struct {
	Message string `json:"message" example:"User was created: user@example.com"`
}

// @Summary      Sign a user up
// @Description  Creates a user from an email and a password. The email must not be registered yet.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signupRequest  body      SignupRequest  true  "Signup Credentials"
// @Success      201            {object}  MessageResponse
// @Failure      400            {string}  string "Invalid request body"
// @Failure      422            {object}  apperr.Error "User already exists"
// @Router       /auth/signup [post]
func (s *Server) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := s.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, MessageResponse{Message: message})
}

type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

// @Summary      Log a user in
// @Description  Authenticates a user and returns the user together with a short-lived access token and a long-lived refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  service.LoginResult
// @Failure      400            {string}  string "Invalid request body"
// @Failure      404            {object}  apperr.Error "User doesn't exist"
// @Failure      422            {object}  apperr.Error "Incorrect password or inactive user"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// @Summary      Refresh tokens
// @Description  Exchanges a valid refresh token for a new access/refresh pair. Previously issued refresh tokens stay valid until expiry.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refreshTokenRequest  body      RefreshTokenRequest  true  "Refresh Token"
// @Success      200                  {object}  service.LoginResult
// @Failure      400                  {string}  string "Invalid request body or missing token"
// @Failure      401                  {object}  apperr.Error "Expired token"
// @Failure      404                  {object}  apperr.Error "User doesn't exist"
// @Failure      422                  {object}  apperr.Error "Invalid or wrong-type token"
// @Router       /auth/refresh [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.RefreshToken == "" {
		http.Error(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	result, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
