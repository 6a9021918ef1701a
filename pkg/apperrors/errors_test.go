package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailsDoesNotMutateShared(t *testing.T) {
	withDetails := ErrFileTooLarge.WithDetails(map[string]int64{"maxSize": 10})

	assert.Nil(t, ErrFileTooLarge.Details)
	assert.NotNil(t, withDetails.Details)
	assert.Equal(t, ErrFileTooLarge.Code, withDetails.Code)
}

func TestAsAppErrorUnwrapsChain(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), ErrSwapNotFound)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestMarshalJSONHidesCause(t *testing.T) {
	err := Wrap(errors.New("s3: secret bucket"), CodeStorageError, "upload", "Failed to store file", http.StatusInternalServerError)

	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), `"code":"STORAGE_ERROR"`)
}

func TestHandleErrorHidesInternalMessageOutsideDebug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetDebug(false)
	t.Cleanup(func() { SetDebug(true) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, Wrap(errors.New("boom"), CodeStorageError, "upload", "connection refused to 10.0.0.1", http.StatusInternalServerError))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "STORAGE_ERROR", body.Error.Code)
	assert.Equal(t, "Internal server error", body.Error.Message)
}

func TestHandleErrorWrapsUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, errors.New("unexpected"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(CodeInternalError))
}
