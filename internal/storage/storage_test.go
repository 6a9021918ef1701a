package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillswap/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a.png", strings.NewReader("png-bytes"), "image/png"))

	obj, err := s.Open(ctx, "a.png")
	require.NoError(t, err)
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())

	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, int64(9), obj.Size)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, "/uploads/a.png", s.URL("a.png"))

	require.NoError(t, s.Delete(ctx, "a.png"))
	_, err = s.Open(ctx, "a.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// повторное удаление не ошибка
	assert.NoError(t, s.Delete(ctx, "a.png"))
}

func TestLocalStorageLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Save(ctx, "b.pdf", strings.NewReader("data"), "application/pdf")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStorageRejectsUnsafeKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "uploads"), "")
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../etc/passwd", "a/b.png", `a\b.png`} {
		assert.ErrorIs(t, s.Save(ctx, key, strings.NewReader("x"), ""), ErrInvalidKey, key)
		_, err := s.Open(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestNewStorage(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/uploads/"

	s, err := NewStorage(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/x.gif", s.URL("x.gif"))

	cfg.Storage.Type = "ftp"
	_, err = NewStorage(cfg)
	assert.Error(t, err)

	cfg.Storage.Type = "s3"
	_, err = NewStorage(cfg)
	assert.Error(t, err, "bucket is required")

	cfg.Storage.Bucket = "media"
	cfg.Storage.Endpoint = "http://localhost:9000"
	s, err = NewStorage(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/x.gif", s.URL("x.gif"))
}
