package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/api"
	"github.com/fatukunda/partytime/internal/app"
	iauth "github.com/fatukunda/partytime/internal/auth"
	sharedtestutil "github.com/fatukunda/partytime/internal/database/testutil"
	"github.com/fatukunda/partytime/pkg/response"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
	Tokens *iauth.TokenService
}

// NewEnv provisions a fresh handler test environment with migrations applied.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t)

	jwtSecret := "test-suite-super-secret-key-32-bytes!!"
	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret:   jwtSecret,
		Issuer:   "test-suite",
		TokenTTL: time.Hour,
	})
	require.NoError(t, err)

	tokenSvc, err := iauth.NewTokenService(db, jwtSvc, iauth.TokenConfig{})
	require.NoError(t, err)

	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{
				Secret: jwtSecret,
				Issuer: "test-suite",
				TTL:    time.Hour,
			},
		},
	}
	cfg.Monitoring.Health.Enabled = true

	router, err := api.NewRouter(db, tokenSvc, cfg)
	require.NoError(t, err)

	return &Env{
		T:      t,
		DB:     db,
		Router: router,
		Tokens: tokenSvc,
	}
}

// UserPayload captures the subset of user fields returned from user endpoints.
type UserPayload struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
}

// SessionResult bundles the JSON response from registration and login.
type SessionResult struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}

// Register creates an account through the public endpoint and returns the user and first token.
func (e *Env) Register(email, password string) SessionResult {
	e.T.Helper()

	payload := map[string]string{
		"first_name":    "Luka",
		"last_name":     "Mukasa",
		"date_of_birth": "1995-06-15",
		"gender":        "male",
		"email":         email,
		"password":      password,
	}

	w := e.Request(http.MethodPost, "/users", payload, "")
	require.Equal(e.T, http.StatusCreated, w.Code, w.Body.String())

	resp := DecodeResponse(e.T, w)
	require.True(e.T, resp.Success, w.Body.String())

	var result SessionResult
	DecodeInto(e.T, resp.Data, &result)
	require.NotEmpty(e.T, result.User.ID)
	require.NotEmpty(e.T, result.Token)

	return result
}

// Login authenticates through the public endpoint and returns the issued token.
func (e *Env) Login(email, password string) SessionResult {
	e.T.Helper()

	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	w := e.Request(http.MethodPost, "/users/login", payload, "")
	require.Equal(e.T, http.StatusOK, w.Code, w.Body.String())

	resp := DecodeResponse(e.T, w)
	require.True(e.T, resp.Success, w.Body.String())

	var result SessionResult
	DecodeInto(e.T, resp.Data, &result)
	require.NotEmpty(e.T, result.Token)

	return result
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router, applying JSON encoding and auth headers automatically.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// UploadFile describes a single file part of a multipart upload.
type UploadFile struct {
	Field    string
	Filename string
	Content  []byte
}

// RequestMultipart executes a multipart upload against the test router.
func (e *Env) RequestMultipart(method, path string, files []UploadFile, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		require.NoError(e.T, err)
		_, err = io.Copy(part, bytes.NewReader(file.Content))
		require.NoError(e.T, err)
	}
	require.NoError(e.T, writer.Close())

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(e.T, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
