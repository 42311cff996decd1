// @title           Backend Boilerplate API
// @version         1.0
// @description     User signup/login/refresh with JWT, file upload to object storage and an admin panel.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"backend-boilerplate/internal/api"
	"backend-boilerplate/internal/auth"
	"backend-boilerplate/internal/config"
	"backend-boilerplate/internal/database"
	"backend-boilerplate/internal/service"
	"backend-boilerplate/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "backend-boilerplate/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	ctx := context.Background()

	if err := database.Migrate(ctx, cfg.DB.Source); err != nil {
		log.Fatalf("Could not apply migrations: %v", err)
	}

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		log.Fatalf("Could not ping the database: %v", err)
	}
	log.Println("Connected to the database")

	var objectStorage storage.ObjectStorage
	if cfg.S3.Bucket != "" {
		objectStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("Could not initialize S3 storage: %v", err)
		}
		log.Printf("Uploads go to S3 bucket %q", cfg.S3.Bucket)
	} else {
		objectStorage, err = storage.NewLocalStorage(cfg.Storage.Path, cfg.AppHost)
		if err != nil {
			log.Fatalf("Could not initialize local storage: %v", err)
		}
		log.Printf("No S3 bucket configured, uploads go to %s", cfg.Storage.Path)
	}

	store := database.NewStore(dbpool)
	codec := auth.NewTokenCodec(cfg.JWT.Secret, "backend-boilerplate")
	users := service.NewUsers(store, codec, cfg.JWT)
	files := service.NewFiles(store, objectStorage)
	server := api.NewServer(cfg, store, users, files)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", server.SignupHandler)
		r.Post("/auth/login", server.LoginHandler)
		r.Post("/auth/refresh", server.RefreshTokenHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.AuthMiddleware)
			r.Get("/me", server.GetCurrentUserHandler)
			r.Patch("/me", server.UpdateCurrentUserHandler)
			r.Delete("/me", server.DeleteCurrentUserHandler)
			r.Get("/users", server.ListUsersHandler)
			r.Post("/files", server.UploadFileHandler)
			r.Get("/files", server.ListFilesHandler)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", server.AdminLoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.AuthMiddleware)
			r.Use(server.AdminMiddleware)
			r.Get("/users", server.AdminListUsersHandler)
			r.Get("/files", server.AdminListFilesHandler)
			r.Delete("/files/{fileId}", server.AdminDeleteFileHandler)
		})
	})

	log.Println("Starting server on :8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}
