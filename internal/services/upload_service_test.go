package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"skillswap/internal/storage"
	"skillswap/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 48)...)

var allowedForTest = []string{"image/png", "image/jpeg", "application/pdf"}

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func newUploadFixture(t *testing.T, maxSize int64) (UploadService, *fakeFileRepo, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	repo := newFakeFileRepo()
	return NewUploadService(repo, store, maxSize, allowedForTest), repo, dir
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUploadStoresDetectedType(t *testing.T) {
	svc, repo, dir := newUploadFixture(t, 1024)
	ctx := context.Background()

	// заявленный тип игнорируется, если содержимое распознано
	file, err := svc.Upload(ctx, nil, "alice", fileHeader(t, "avatar.jpg", "image/jpeg", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, "avatar.jpg", file.OriginalName)
	assert.True(t, strings.HasSuffix(file.Filename, ".png"), file.Filename)
	assert.Equal(t, "/uploads/"+file.Filename, file.URL)
	assert.EqualValues(t, len(pngBytes), file.Size)
	assert.Contains(t, repo.files, file.ID)
	assert.Equal(t, []string{file.Filename}, storedFiles(t, dir))

	obj, err := svc.OpenUpload(ctx, file.Filename)
	require.NoError(t, err)
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())
	assert.Equal(t, pngBytes, data)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	svc, repo, dir := newUploadFixture(t, 1024)

	_, err := svc.Upload(context.Background(), nil, "alice", fileHeader(t, "notes.png", "image/png", []byte("just some text")))
	requireAppError(t, err, http.StatusUnsupportedMediaType, apperrors.CodeUnsupportedMedia)
	assert.Empty(t, repo.files)
	assert.Empty(t, storedFiles(t, dir))
}

func TestUploadTooLarge(t *testing.T) {
	svc, _, dir := newUploadFixture(t, 16)
	ctx := context.Background()

	_, err := svc.Upload(ctx, nil, "alice", fileHeader(t, "a.png", "image/png", pngBytes))
	requireAppError(t, err, http.StatusRequestEntityTooLarge, apperrors.CodeLimitExceeded)

	// заголовок занижает размер: лимит срабатывает при записи
	fh := fileHeader(t, "a.png", "image/png", pngBytes)
	fh.Size = 8
	_, err = svc.Upload(ctx, nil, "alice", fh)
	requireAppError(t, err, http.StatusRequestEntityTooLarge, apperrors.CodeLimitExceeded)
	assert.Empty(t, storedFiles(t, dir))

	_, err = svc.Upload(ctx, nil, "alice", nil)
	requireAppError(t, err, http.StatusBadRequest, apperrors.ErrNoFileUploaded.Code)
}

func TestUploadRemovesBytesWhenRecordFails(t *testing.T) {
	svc, repo, dir := newUploadFixture(t, 1024)
	repo.createErr = errors.New("insert failed")

	_, err := svc.Upload(context.Background(), nil, "alice", fileHeader(t, "a.png", "image/png", pngBytes))
	requireAppError(t, err, http.StatusInternalServerError, apperrors.CodeInternalError)
	assert.Empty(t, storedFiles(t, dir))
}

func TestDeleteFileOwnerOnly(t *testing.T) {
	svc, repo, dir := newUploadFixture(t, 1024)
	ctx := context.Background()

	file, err := svc.Upload(ctx, nil, "alice", fileHeader(t, "a.png", "image/png", pngBytes))
	require.NoError(t, err)

	err = svc.DeleteFile(ctx, nil, "bob", file.ID)
	requireAppError(t, err, http.StatusForbidden, apperrors.CodeForbidden)
	assert.Len(t, storedFiles(t, dir), 1)

	require.NoError(t, svc.DeleteFile(ctx, nil, "alice", file.ID))
	assert.Empty(t, repo.files)
	assert.Empty(t, storedFiles(t, dir))

	err = svc.DeleteFile(ctx, nil, "alice", file.ID)
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)

	_, err = svc.OpenUpload(ctx, file.Filename)
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)

	_, err = svc.OpenUpload(ctx, "../secret")
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)
}

func TestOriginalNameAndExtension(t *testing.T) {
	assert.Equal(t, "photo.png", originalName(`C:\Users\me\photo.png`))
	assert.Equal(t, "photo.png", originalName("../../photo.png"))
	assert.Len(t, originalName(strings.Repeat("я", 300)), 254)

	assert.Equal(t, "image/png", baseType("Image/PNG; charset=binary"))
}
