package database

import (
	"context"

	"backend-boilerplate/internal/models"
)

type CreateFileParams struct {
	FileName string
	FileURL  string
}

func (q *Queries) CreateFile(ctx context.Context, arg CreateFileParams) (*models.File, error) {
	query := `
		INSERT INTO files (file_name, file_url)
		VALUES ($1, $2)
		RETURNING id, file_name, file_url, is_deleted, created_at, updated_at
	`
	var file models.File
	err := q.db.QueryRow(ctx, query, arg.FileName, arg.FileURL).Scan(
		&file.ID,
		&file.FileName,
		&file.FileURL,
		&file.IsDeleted,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (q *Queries) ListFiles(ctx context.Context) ([]models.File, error) {
	query := `
		SELECT id, file_name, file_url, is_deleted, created_at, updated_at
		FROM files
		ORDER BY id ASC
	`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.FileName,
			&file.FileURL,
			&file.IsDeleted,
			&file.CreatedAt,
			&file.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if files == nil {
		return []models.File{}, nil
	}

	return files, nil
}

// SoftDeleteFile flips the is_deleted flag; the object in storage is
// left in place.
func (q *Queries) SoftDeleteFile(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE files SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`
	res, err := q.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
