package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend-boilerplate/internal/apperr"
	"backend-boilerplate/internal/auth"
	"backend-boilerplate/internal/config"
	"backend-boilerplate/internal/database"
	"backend-boilerplate/internal/models"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	users  map[int64]*models.User
	files  []models.File
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, arg database.CreateUserParams) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == arg.Email {
			return nil, database.ErrUserAlreadyExists
		}
	}
	now := time.Now()
	user := &models.User{
		ID:             f.nextID,
		Email:          arg.Email,
		HashedPassword: arg.HashedPassword,
		IsActive:       true,
		IsSuperuser:    arg.IsSuperuser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.users[user.ID] = user
	f.nextID++
	copied := *user
	return &copied, nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("no such user")
	}
	user.UpdatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeStore) CreateFile(ctx context.Context, arg database.CreateFileParams) (*models.File, error) {
	file := models.File{
		ID:       int64(len(f.files) + 1),
		FileName: arg.FileName,
		FileURL:  arg.FileURL,
	}
	f.files = append(f.files, file)
	return &file, nil
}

func (f *fakeStore) ListFiles(ctx context.Context) ([]models.File, error) {
	return f.files, nil
}

func (f *fakeStore) SoftDeleteFile(ctx context.Context, id int64) (bool, error) {
	for i := range f.files {
		if f.files[i].ID == id && !f.files[i].IsDeleted {
			f.files[i].IsDeleted = true
			return true, nil
		}
	}
	return false, nil
}

func newTestService(t *testing.T) (*Users, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	codec := auth.NewTokenCodec("service_test_secret", "backend-boilerplate")
	jwtCfg := config.JWTConfig{
		Scheme:                   "Bearer",
		AccessTokenExpireMinutes: 15,
		RefreshTokenExpireDays:   30,
	}
	return NewUsers(store, codec, jwtCfg), store
}

func requireAppErr(t *testing.T, err error) *apperr.Error {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	return appErr
}

func TestSignupAndDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	msg, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "User was created: a@x.com", msg)

	_, err = svc.Signup(ctx, "a@x.com", "pw2")
	appErr := requireAppErr(t, err)
	require.Equal(t, apperr.CodeUnprocessableEntity, appErr.Code)
	require.Equal(t, "User already exists", appErr.Explain["email"])
}

func TestLoginErrorPrecedence(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// Non-existent email.
	_, err := svc.Login(ctx, "nobody@x.com", "pw")
	appErr := requireAppErr(t, err)
	require.Equal(t, apperr.CodeResourceNotFound, appErr.Code)

	_, err = svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	// Existing email, wrong password.
	_, err = svc.Login(ctx, "a@x.com", "wrong")
	appErr = requireAppErr(t, err)
	require.Equal(t, apperr.CodeUnprocessableEntity, appErr.Code)
	require.Equal(t, "Incorrect password", appErr.Explain["password"])

	// Correct password, inactive user.
	for _, u := range store.users {
		u.IsActive = false
	}
	_, err = svc.Login(ctx, "a@x.com", "pw1")
	appErr = requireAppErr(t, err)
	require.Equal(t, apperr.CodeUnprocessableEntity, appErr.Code)
	require.Equal(t, "User is not active", appErr.Explain["non_field"])
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.NotEqual(t, result.AccessToken, result.RefreshToken)

	// The pair carries distinct token_type claims: each token decodes
	// only under its own type.
	codec := auth.NewTokenCodec("service_test_secret", "backend-boilerplate")
	userID, err := codec.Decode(result.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, userID)

	_, err = codec.Decode(result.AccessToken, auth.TokenTypeRefresh)
	require.ErrorIs(t, err, auth.ErrWrongTokenType)
	_, err = codec.Decode(result.RefreshToken, auth.TokenTypeAccess)
	require.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	login, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, login.User.ID, refreshed.User.ID)

	codec := auth.NewTokenCodec("service_test_secret", "backend-boilerplate")
	userID, err := codec.Decode(refreshed.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, login.User.ID, userID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, login.AccessToken)
	appErr := requireAppErr(t, err)
	require.Equal(t, apperr.CodeUnprocessableEntity, appErr.Code)
	require.Equal(t, "Wrong JWT type", appErr.Explain["non_field"])
}

func TestRefreshDeletedUser(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	store.users = map[int64]*models.User{}

	_, err = svc.Refresh(ctx, login.RefreshToken)
	appErr := requireAppErr(t, err)
	require.Equal(t, apperr.CodeResourceNotFound, appErr.Code)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, login.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)

	// A refresh token must never pass where an access token is
	// expected.
	_, err = svc.CurrentUser(ctx, login.RefreshToken)
	appErr := requireAppErr(t, err)
	require.Equal(t, "Wrong JWT type", appErr.Explain["non_field"])
}

func TestCurrentUserExpiredToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	codec := auth.NewTokenCodec("service_test_secret", "backend-boilerplate")
	expired, err := codec.Encode(auth.TokenTypeAccess, 1, -time.Minute)
	require.NoError(t, err)

	_, err = svc.CurrentUser(ctx, expired)
	appErr := requireAppErr(t, err)
	require.Equal(t, apperr.CodeTokenExpired, appErr.Code)
}

func TestLoginAdmin(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "admin@x.com", "pw1")
	require.NoError(t, err)

	// Active but not superuser.
	_, err = svc.LoginAdmin(ctx, "admin@x.com", "pw1")
	appErr := requireAppErr(t, err)
	require.Equal(t, "User is not admin", appErr.Explain["is_superuser"])
	require.NotContains(t, appErr.Explain, "is_active")

	// Inactive and not superuser: both reasons in one error.
	for _, u := range store.users {
		u.IsActive = false
	}
	_, err = svc.LoginAdmin(ctx, "admin@x.com", "pw1")
	appErr = requireAppErr(t, err)
	require.Equal(t, "User is not active", appErr.Explain["is_active"])
	require.Equal(t, "User is not admin", appErr.Explain["is_superuser"])

	// Active superuser gets a bare access token.
	for _, u := range store.users {
		u.IsActive = true
		u.IsSuperuser = true
	}
	token, err := svc.LoginAdmin(ctx, "admin@x.com", "pw1")
	require.NoError(t, err)

	codec := auth.NewTokenCodec("service_test_secret", "backend-boilerplate")
	_, err = codec.Decode(token, auth.TokenTypeAccess)
	require.NoError(t, err)
}

func TestUpdateOnlySuppliedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	user, err := svc.store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	first := "John"
	user, err = svc.Update(ctx, user, UpdateUserParams{FirstName: &first})
	require.NoError(t, err)
	require.Equal(t, "John", *user.FirstName)

	// first_name nil leaves it untouched, last_name gets set.
	last := "Smith"
	user, err = svc.Update(ctx, user, UpdateUserParams{LastName: &last})
	require.NoError(t, err)
	require.Equal(t, "John", *user.FirstName)
	require.Equal(t, "Smith", *user.LastName)
	require.Equal(t, "John Smith", user.FullName())
}

func TestUpdatePasswordIsHashed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	user, err := svc.store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	newPassword := "pw2"
	_, err = svc.Update(ctx, user, UpdateUserParams{Password: &newPassword})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "pw2")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "a@x.com", "pw1")
	require.Error(t, err)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	user, err := svc.store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	msg, err := svc.Delete(ctx, user)
	require.NoError(t, err)
	require.Equal(t, "User was deleted: a@x.com", msg)

	_, err = svc.Login(ctx, "a@x.com", "pw1")
	appErr := requireAppErr(t, err)
	require.Equal(t, apperr.CodeResourceNotFound, appErr.Code)
}
