package models

import "time"

// File records an uploaded asset. The bytes live in object storage;
// only the generated name and public URL are kept here.
type File struct {
	ID        int64     `json:"id" db:"id"`
	FileName  string    `json:"file_name" db:"file_name"`
	FileURL   string    `json:"file_url" db:"file_url"`
	IsDeleted bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
