package api

import (
	"context"
	"log"
	"os"
	"testing"

	"backend-boilerplate/internal/auth"
	"backend-boilerplate/internal/config"
	"backend-boilerplate/internal/database"
	"backend-boilerplate/internal/models"
	"backend-boilerplate/internal/service"
	"backend-boilerplate/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testServer    *Server
	testCodec     *auth.TokenCodec
	testUser      *models.User
	testUserToken string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	if err := database.Migrate(ctx, connStr); err != nil {
		log.Fatalf("Could not apply migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}
	defer pool.Close()

	tempDir, err := os.MkdirTemp("", "api-storage-test")
	if err != nil {
		log.Fatalf("Could not create temp dir: %s", err)
	}
	defer os.RemoveAll(tempDir)

	localStorage, err := storage.NewLocalStorage(tempDir, "http://localhost:8080")
	if err != nil {
		log.Fatalf("Could not create local storage: %s", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:                   "api_test_secret",
			Scheme:                   "Bearer",
			AccessTokenExpireMinutes: 15,
			RefreshTokenExpireDays:   30,
		},
	}

	store := database.NewStore(pool)
	testCodec = auth.NewTokenCodec(cfg.JWT.Secret, "backend-boilerplate")
	users := service.NewUsers(store, testCodec, cfg.JWT)
	files := service.NewFiles(store, localStorage)
	testServer = NewServer(cfg, store, users, files)

	hashedPassword, _ := auth.HashPassword("password")
	testUser, err = store.CreateUser(ctx, database.CreateUserParams{
		Email:          "api_test_user@test.com",
		HashedPassword: hashedPassword,
	})
	if err != nil {
		log.Fatalf("Could not create test user: %s", err)
	}

	testUserToken, err = testCodec.Encode(auth.TokenTypeAccess, testUser.ID, cfg.JWT.AccessTokenTTL())
	if err != nil {
		log.Fatalf("Could not create test token: %s", err)
	}

	os.Exit(m.Run())
}
