package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"skillswap/database"
	"skillswap/internal/app"
	"skillswap/internal/auth"
	"skillswap/internal/config"
	"skillswap/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const testJWTSecret = "integration-test-secret"

// TestServer - настоящий роутер приложения поверх тестовой БД
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Tokens *auth.TokenManager
	Config *config.Config
}

// NewTestServer поднимает приложение против TEST_DATABASE_URL.
// Без этой переменной тест пропускается.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skipping integration test")
	}

	gin.SetMode(gin.TestMode)
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("JWT_ISSUER", "skillswap-test")
	t.Setenv("UPLOAD_DIR", t.TempDir())
	t.Setenv("STATIC_DIR", t.TempDir())
	t.Setenv("STORAGE_TYPE", "local")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-1")
	t.Setenv("CONFIG_PATH", "testdata/does-not-exist.yaml")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Не удалось загрузить конфиг: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Не удалось получить *sql.DB из GORM: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	router, services := app.SetupRouter(ctx, cfg, db, sqlDB)

	t.Cleanup(func() {
		cancel()
		services.NotificationService.Wait()
		sqlDB.Close()
	})

	return &TestServer{
		Router: router,
		DB:     db,
		Tokens: auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer),
		Config: cfg,
	}
}

// BeginTransaction - каждый тест работает в своей транзакции и откатывает ее
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	t.Helper()
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("Не удалось начать транзакцию: %v", tx.Error)
	}
	t.Cleanup(func() { ts.RollbackTransaction(t, tx) })
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("Откат транзакции: %v", err)
	}
}

// SendRequest выполняет JSON-запрос через роутер; tx попадает в DBMiddleware через контекст
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, tx, req, token)
}

// SendFile - multipart-загрузка одного поля "file"
func (ts *TestServer) SendFile(t *testing.T, tx *gorm.DB, path, token, filename, contentType string, data []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("Ошибка создания multipart: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Ошибка записи multipart: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Ошибка закрытия multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return ts.do(t, tx, req, token)
}

func (ts *TestServer) do(t *testing.T, tx *gorm.DB, req *http.Request, token string) (*http.Response, string) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tx != nil {
		req = req.WithContext(context.WithValue(req.Context(), contextkeys.DBContextKey, tx))
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	return res, string(resBody)
}
