package handlers

import (
	"errors"
	"net/http"
	"strings"

	"skillswap/internal/services"
	"skillswap/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// multipartOverhead - запас на заголовки и границы multipart поверх максимального размера файла
const multipartOverhead = 1 << 20

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/upload", h.RequireAuth(), h.Upload)
}

// Upload принимает одно поле multipart "file"
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadService.MaxSize()+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, formFileError(err))
		return
	}

	file, err := h.uploadService.Upload(c.Request.Context(), h.GetDB(c), userID, fh)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, file)
}

func formFileError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr), strings.Contains(err.Error(), "request body too large"):
		return apperrors.ErrFileTooLarge
	case errors.Is(err, http.ErrMissingFile):
		return apperrors.ErrNoFileUploaded
	default:
		return apperrors.NewBadRequestError("Invalid multipart form: " + err.Error())
	}
}
