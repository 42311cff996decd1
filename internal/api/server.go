package api

import (
	"backend-boilerplate/internal/config"
	"backend-boilerplate/internal/database"
	"backend-boilerplate/internal/service"
)

type Server struct {
	config *config.Config
	store  *database.Store
	users  *service.Users
	files  *service.Files
}

func NewServer(cfg *config.Config, store *database.Store, users *service.Users, files *service.Files) *Server {
	return &Server{
		config: cfg,
		store:  store,
		users:  users,
		files:  files,
	}
}
