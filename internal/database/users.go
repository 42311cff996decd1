package database

import (
	"context"
	"errors"
	"time"

	"backend-boilerplate/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrUserAlreadyExists = errors.New("a user with this email already exists")

const userColumns = `
	id,
	email,
	hashed_password,
	is_active,
	is_superuser,
	first_name,
	last_name,
	created_at,
	updated_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsActive,
		&user.IsSuperuser,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(q.db.QueryRow(ctx, query, email))
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.db.QueryRow(ctx, query, id))
}

type CreateUserParams struct {
	Email          string
	HashedPassword string
	IsSuperuser    bool
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (email, hashed_password, is_superuser)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(q.db.QueryRow(ctx, query, arg.Email, arg.HashedPassword, arg.IsSuperuser))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

// UpdateUser persists the full current state of the user row and
// stamps updated_at.
func (q *Queries) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, hashed_password = $2, is_active = $3, is_superuser = $4,
			first_name = $5, last_name = $6, updated_at = $7
		WHERE id = $8
	`
	user.UpdatedAt = time.Now()
	_, err := q.db.Exec(ctx, query,
		user.Email,
		user.HashedPassword,
		user.IsActive,
		user.IsSuperuser,
		user.FirstName,
		user.LastName,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (q *Queries) DeleteUser(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM users WHERE id = $1`
	res, err := q.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.HashedPassword,
			&user.IsActive,
			&user.IsSuperuser,
			&user.FirstName,
			&user.LastName,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if users == nil {
		return []models.User{}, nil
	}

	return users, nil
}
