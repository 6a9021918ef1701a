package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"skillswap/internal/logger"
	"skillswap/internal/models"
	"skillswap/internal/repositories"
	"skillswap/internal/storage"
	"skillswap/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	octetStream = "application/octet-stream"
	sniffLen    = 3072
)

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

type UploadService interface {
	Upload(ctx context.Context, db *gorm.DB, userID string, fh *multipart.FileHeader) (*models.File, error)
	GetFile(db *gorm.DB, id uint) (*models.File, error)
	DeleteFile(ctx context.Context, db *gorm.DB, userID string, id uint) error
	// OpenUpload открывает сохраненные байты для отдачи по /uploads/<filename>
	OpenUpload(ctx context.Context, filename string) (*storage.Object, error)
	MaxSize() int64
}

type UploadServiceImpl struct {
	fileRepo     repositories.FileRepository
	storage      storage.Storage
	maxSize      int64
	allowedTypes map[string]struct{}
}

func NewUploadService(fileRepo repositories.FileRepository, store storage.Storage, maxSize int64, allowedTypes []string) UploadService {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &UploadServiceImpl{
		fileRepo:     fileRepo,
		storage:      store,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

func (s *UploadServiceImpl) MaxSize() int64 {
	return s.maxSize
}

// Upload проверяет размер и тип, сохраняет байты под сгенерированным именем,
// затем создает запись File. При ошибке записи в БД байты удаляются.
func (s *UploadServiceImpl) Upload(ctx context.Context, db *gorm.DB, userID string, fh *multipart.FileHeader) (*models.File, error) {
	if fh == nil {
		return nil, apperrors.ErrNoFileUploaded
	}
	if fh.Size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, apperrors.InternalError(err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	mimeType := s.resolveType(detected, fh.Header.Get("Content-Type"))
	if mimeType == "" {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"detected": baseType(detected.String())})
	}

	filename := uuid.NewString() + extensionFor(detected, fh.Filename)
	counter := &countingReader{r: io.LimitReader(io.MultiReader(bytes.NewReader(head), src), s.maxSize+1)}

	if err := s.storage.Save(ctx, filename, counter, mimeType); err != nil {
		s.cleanup(ctx, filename)
		return nil, apperrors.Wrap(err, apperrors.CodeStorageError, "upload", "Failed to store file", http.StatusInternalServerError)
	}
	if counter.n > s.maxSize {
		s.cleanup(ctx, filename)
		return nil, apperrors.ErrFileTooLarge
	}

	file := &models.File{
		UserID:       userID,
		Filename:     filename,
		OriginalName: originalName(fh.Filename),
		MimeType:     mimeType,
		Size:         counter.n,
		URL:          s.storage.URL(filename),
	}
	if err := s.fileRepo.CreateFile(db, file); err != nil {
		s.cleanup(ctx, filename)
		return nil, handleFileError(err)
	}

	logger.CtxDebug(ctx, "File stored", "filename", filename, "mime_type", mimeType, "size", counter.n)
	return file, nil
}

// resolveType возвращает разрешенный MIME-тип или "".
// Если по содержимому тип не определился, доверяем заголовку части.
func (s *UploadServiceImpl) resolveType(detected *mimetype.MIME, declared string) string {
	candidate := baseType(detected.String())
	if candidate == octetStream && declared != "" {
		candidate = baseType(declared)
	}

	if _, ok := s.allowedTypes[candidate]; ok {
		return candidate
	}
	if candidate == baseType(detected.String()) {
		for allowed := range s.allowedTypes {
			if detected.Is(allowed) {
				return allowed
			}
		}
	}
	return ""
}

func (s *UploadServiceImpl) GetFile(db *gorm.DB, id uint) (*models.File, error) {
	file, err := s.fileRepo.FindFileByID(db, id)
	if err != nil {
		return nil, handleFileError(err)
	}
	return file, nil
}

// DeleteFile - только владелец. Сначала удаляется запись, потом байты:
// осиротевшие байты безвредны, а запись без байтов - нет.
func (s *UploadServiceImpl) DeleteFile(ctx context.Context, db *gorm.DB, userID string, id uint) error {
	file, err := s.fileRepo.FindFileByID(db, id)
	if err != nil {
		return handleFileError(err)
	}
	if file.UserID != userID {
		return apperrors.ErrFileAccessDenied
	}

	if err := s.fileRepo.DeleteFile(db, id); err != nil {
		return handleFileError(err)
	}
	s.cleanup(ctx, file.Filename)
	return nil
}

func (s *UploadServiceImpl) OpenUpload(ctx context.Context, filename string) (*storage.Object, error) {
	obj, err := s.storage.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, apperrors.CodeStorageError, "file", "Failed to read file", http.StatusInternalServerError)
	}
	return obj, nil
}

func (s *UploadServiceImpl) cleanup(ctx context.Context, filename string) {
	if err := s.storage.Delete(context.WithoutCancel(ctx), filename); err != nil {
		logger.CtxWithError(ctx, "Failed to delete stored file", err, "filename", filename)
	}
}

func handleFileError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrFileNotFound):
		return apperrors.ErrFileNotFound
	default:
		return apperrors.InternalError(err)
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func baseType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}

func extensionFor(detected *mimetype.MIME, original string) string {
	if baseType(detected.String()) != octetStream && detected.Extension() != "" {
		return detected.Extension()
	}
	ext := strings.ToLower(filepath.Ext(original))
	if safeExt.MatchString(ext) {
		return ext
	}
	return ""
}

func originalName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	for len(name) > 255 {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return name
}
