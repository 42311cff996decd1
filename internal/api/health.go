package api

import "net/http"

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// @Summary      Health check
// @Description  Reports whether the server and its database connection are up.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.GetPool().Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "database unreachable"})
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
