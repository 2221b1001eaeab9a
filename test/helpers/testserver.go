package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"subtrack/internal/app"
	"subtrack/internal/auth"
	"subtrack/internal/config"
	"subtrack/internal/database"
	"subtrack/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-for-subtrack"

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

// NewTestDB открывает чистую sqlite-базу во временной папке теста и мигрирует схему
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := TestConfig(t)
	db, err := database.Open(cfg)
	require.NoError(t, err, "Не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// TestConfig - конфигурация с sqlite-файлом в t.TempDir()
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join(t.TempDir(), "subtrack.db") + "?_foreign_keys=on&_busy_timeout=5000"
	cfg.JWT.Secret = testSecret
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

// NewTestServer поднимает роутер приложения поверх отдельной базы
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	logger.InitWithWriter("test", io.Discard)
	gin.SetMode(gin.TestMode)

	cfg := TestConfig(t)
	db, err := database.Open(cfg)
	require.NoError(t, err, "Не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db))

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Hour)
	router := app.SetupRouter(cfg, db, tokens)

	ts := &TestServer{
		Server: httptest.NewServer(router),
		DB:     db,
		Tokens: tokens,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// URL - базовый адрес API для internal/client
func (ts *TestServer) URL() string {
	return ts.Server.URL + "/api/v1"
}

// Token выпускает токен для userID с ролью role
func (ts *TestServer) Token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := ts.Tokens.Issue(userID, role)
	require.NoError(t, err)
	return token
}

func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "Ошибка создания HTTP-запроса")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")

	return res, string(resBodyBytes)
}

// Decode разбирает тело ответа в T
func Decode[T any](t *testing.T, body string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(body), &out), "Не удалось распарсить JSON: %s", body)
	return out
}
