package service

import (
	"context"
	"errors"
	"fmt"

	"backend-boilerplate/internal/apperr"
	"backend-boilerplate/internal/auth"
	"backend-boilerplate/internal/config"
	"backend-boilerplate/internal/database"
	"backend-boilerplate/internal/models"
)

// Store is the slice of the persistence layer the services need.
// *database.Store satisfies it; tests substitute an in-memory fake.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, arg database.CreateUserParams) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateFile(ctx context.Context, arg database.CreateFileParams) (*models.File, error)
	ListFiles(ctx context.Context) ([]models.File, error)
	SoftDeleteFile(ctx context.Context, id int64) (bool, error)
}

// Users orchestrates signup, login, refresh and user management on top
// of the credential hasher, the token codec and the store.
type Users struct {
	store Store
	codec *auth.TokenCodec
	jwt   config.JWTConfig
}

func NewUsers(store Store, codec *auth.TokenCodec, jwtCfg config.JWTConfig) *Users {
	return &Users{store: store, codec: codec, jwt: jwtCfg}
}

type LoginResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Signup creates a user from an email and a password. The email must
// not be taken yet.
func (s *Users) Signup(ctx context.Context, email, password string) (string, error) {
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperr.Validation(apperr.UserExists)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	user, err := s.store.CreateUser(ctx, database.CreateUserParams{
		Email:          email,
		HashedPassword: hashed,
	})
	if err != nil {
		if errors.Is(err, database.ErrUserAlreadyExists) {
			return "", apperr.Validation(apperr.UserExists)
		}
		return "", err
	}

	return fmt.Sprintf("User was created: %s", user.Email), nil
}

// Login authenticates a user and issues an access/refresh token pair.
// The checks run in a fixed order: existence, password, active flag.
func (s *Users) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound(apperr.UserNotExists)
	}
	if !auth.CheckPasswordHash(password, user.HashedPassword) {
		return nil, apperr.Validation(apperr.IncorrectPassword)
	}
	if !user.IsActive {
		return nil, apperr.Generic(apperr.UserNotActive)
	}

	return s.createTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair. The old
// refresh token is not revoked; the system keeps no revocation list.
func (s *Users) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	userID, err := s.codec.Decode(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, tokenError(err)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound(apperr.UserNotExists)
	}

	return s.createTokens(user)
}

// CurrentUser resolves the user an access token was issued for.
func (s *Users) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	userID, err := s.codec.Decode(accessToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, tokenError(err)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound(apperr.UserNotExists)
	}

	return user, nil
}

// LoginAdmin authenticates for the admin panel. Unlike Login it does
// not short-circuit on the flag checks: an inactive non-admin gets one
// error carrying both reasons. Only a single access token is issued.
func (s *Users) LoginAdmin(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.NotFound(apperr.UserNotExists)
	}
	if !auth.CheckPasswordHash(password, user.HashedPassword) {
		return "", apperr.Validation(apperr.IncorrectPassword)
	}

	explain := map[string]string{}
	if !user.IsActive {
		for k, v := range apperr.AdminNotActive {
			explain[k] = v
		}
	}
	if !user.IsSuperuser {
		for k, v := range apperr.AdminNotAdmin {
			explain[k] = v
		}
	}
	if len(explain) > 0 {
		return "", apperr.Generic(explain)
	}

	return s.codec.Encode(auth.TokenTypeAccess, user.ID, s.jwt.AccessTokenTTL())
}

type UpdateUserParams struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Update overwrites only the fields that were supplied; nil fields
// leave the stored values untouched.
func (s *Users) Update(ctx context.Context, user *models.User, params UpdateUserParams) (*models.User, error) {
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Password != nil {
		hashed, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}
	if params.FirstName != nil {
		user.FirstName = params.FirstName
	}
	if params.LastName != nil {
		user.LastName = params.LastName
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrUserAlreadyExists) {
			return nil, apperr.Validation(apperr.UserExists)
		}
		return nil, err
	}

	return user, nil
}

// Delete permanently removes the user record.
func (s *Users) Delete(ctx context.Context, user *models.User) (string, error) {
	deleted, err := s.store.DeleteUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", apperr.NotFound(apperr.UserNotExists)
	}
	return fmt.Sprintf("User was deleted: %s", user.Email), nil
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *Users) createTokens(user *models.User) (*LoginResult, error) {
	accessToken, err := s.codec.Encode(auth.TokenTypeAccess, user.ID, s.jwt.AccessTokenTTL())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.Encode(auth.TokenTypeRefresh, user.ID, s.jwt.RefreshTokenTTL())
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// tokenError translates codec failures into the structured errors the
// API surfaces. Expiry keeps its own code so clients refresh instead
// of re-authenticating.
func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return apperr.ExpiredToken()
	case errors.Is(err, auth.ErrWrongTokenType):
		return apperr.Generic(apperr.WrongToken)
	case errors.Is(err, auth.ErrMissingSubject):
		return apperr.NotFound(apperr.UserNotExists)
	default:
		return apperr.Generic(apperr.InvalidToken)
	}
}
