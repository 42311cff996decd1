package service

import (
	"context"
	"fmt"
	"io"

	"backend-boilerplate/internal/apperr"
	"backend-boilerplate/internal/database"
	"backend-boilerplate/internal/models"
	"backend-boilerplate/internal/storage"

	"github.com/jaevor/go-nanoid"
)

// Files uploads assets to object storage and records their public
// URLs.
type Files struct {
	store   Store
	storage storage.ObjectStorage
}

func NewFiles(store Store, objectStorage storage.ObjectStorage) *Files {
	return &Files{store: store, storage: objectStorage}
}

// Upload streams the bytes into object storage under a generated key
// and persists a File row pointing at the returned URL.
func (s *Files) Upload(ctx context.Context, fileName, contentType string, data io.Reader) (*models.File, error) {
	generateID, err := nanoid.Standard(12)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	key := fmt.Sprintf("media/%s_%s", generateID(), fileName)

	fileURL, err := s.storage.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	return s.store.CreateFile(ctx, database.CreateFileParams{
		FileName: fileName,
		FileURL:  fileURL,
	})
}

func (s *Files) List(ctx context.Context) ([]models.File, error) {
	return s.store.ListFiles(ctx)
}

// SoftDelete marks a file record deleted. The object itself stays in
// storage.
func (s *Files) SoftDelete(ctx context.Context, id int64) error {
	deleted, err := s.store.SoftDeleteFile(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound(apperr.FileNotExists)
	}
	return nil
}
