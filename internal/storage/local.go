package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage is a filesystem-backed fallback for development and
// tests, used when no S3 bucket is configured.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (ls *LocalStorage) Put(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	filePath := filepath.Join(ls.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return "", err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", ls.baseURL, key), nil
}

func (ls *LocalStorage) Get(key string) (io.ReadCloser, error) {
	filePath := filepath.Join(ls.basePath, filepath.FromSlash(key))

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object %s not found: %w", key, err)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(key string) error {
	filePath := filepath.Join(ls.basePath, filepath.FromSlash(key))

	err := os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
