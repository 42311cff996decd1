package api

import (
	"context"
	"net/http"
	"strings"

	"backend-boilerplate/internal/apperr"
	"backend-boilerplate/internal/models"
)

type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware is the permission gate: it extracts the bearer token,
// resolves the user it was issued for and attaches it to the request
// context. Every failure denies the request; there is no fail-open
// path.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondAuthError(w, apperr.Generic(apperr.AuthNeeded))
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != s.config.JWT.Scheme {
			respondAuthError(w, apperr.Generic(apperr.WrongTokenHeader))
			return
		}

		user, err := s.users.CurrentUser(r.Context(), headerParts[1])
		if err != nil {
			respondAuthError(w, err)
			return
		}
		if !user.IsActive {
			respondAuthError(w, apperr.Generic(apperr.UserNotActive))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware sits behind AuthMiddleware and additionally requires
// an active superuser.
func (s *Server) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || !user.IsActive || !user.IsSuperuser {
			respondAuthError(w, apperr.Generic(apperr.AuthNeeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func GetUserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userContextKey).(*models.User); ok {
		return user
	}
	return nil
}
