package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"skillswap/internal/config"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// Object - открытый на чтение файл хранилища
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Storage - хранилище байтов загруженных файлов. Ключ - плоское имя без каталогов.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Open(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	// URL - публичный адрес, который сохраняется в File.URL
	URL(key string) string
}

// NewStorage выбирает реализацию по config.Storage.Type
func NewStorage(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	case "s3":
		return NewS3Storage(S3Options{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
			BaseURL:   cfg.Storage.BaseURL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

// validateKey не пускает ".." и вложенные пути
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || path.Clean(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
