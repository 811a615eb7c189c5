package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-credential-service/internal/application"
	"github.com/oksasatya/go-credential-service/internal/infrastructure/memory"
	"github.com/oksasatya/go-credential-service/internal/interface/middleware"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
	"github.com/oksasatya/go-credential-service/pkg/validation"
)

const testSecret = "handler-test-secret-0123456789abcdef"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
	RequestID string          `json:"request_id"`
}

type authData struct {
	User      map[string]any `json:"user"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
}

var validationOnce sync.Once

func newTestEngine(t *testing.T, jwt *helpers.JWTManager, cookies *helpers.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validationOnce.Do(validation.Init)

	svc := application.NewService(memory.NewUserRepository(), jwt, nil, nil, nil)
	h := NewAuthHandler(svc, nil, cookies)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	g := r.Group("/api/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", middleware.Auth(svc, nil), h.Me)
	return r
}

func do(r http.Handler, method, path, body string, header map[string]string) (*httptest.ResponseRecorder, envelope) {
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestRegisterThenDuplicate(t *testing.T) {
	r := newTestEngine(t, helpers.NewJWTManager(testSecret, 7*24*time.Hour), nil)
	body := `{"email":"a@x.com","password":"pw123","name":"Ann"}`

	w, env := do(r, http.MethodPost, "/api/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, w.Header().Get(middleware.RequestIDHeader))

	var data authData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "a@x.com", data.User["email"])
	assert.Equal(t, "Ann", data.User["name"])
	assert.NotContains(t, w.Body.String(), "password")
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), data.ExpiresAt, time.Minute)

	w, env = do(r, http.MethodPost, "/api/auth/register", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, application.MsgEmailTaken, env.Message)
}

func TestRegister_Validation(t *testing.T) {
	r := newTestEngine(t, helpers.NewJWTManager(testSecret, time.Hour), nil)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing name", `{"email":"a@x.com","password":"pw123"}`, application.MsgRegisterRequired},
		{"blank email", `{"email":"   ","password":"pw123","name":"Ann"}`, application.MsgRegisterRequired},
		{"malformed json", `{"email":`, "invalid payload"},
		{"empty body", ``, "invalid payload"},
		{"long password", `{"email":"a@x.com","password":"` + strings.Repeat("x", 73) + `","name":"Ann"}`, application.MsgPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(r, http.MethodPost, "/api/auth/register", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestLogin(t *testing.T) {
	r := newTestEngine(t, helpers.NewJWTManager(testSecret, time.Hour), nil)
	w, _ := do(r, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"pw123","name":"Ann"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(r, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"pw123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data authData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)

	wrong, wrongEnv := do(r, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"wrongpw"}`, nil)
	unknown, unknownEnv := do(r, http.MethodPost, "/api/auth/login", `{"email":"b@x.com","password":"pw123"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, application.MsgInvalidCredentials, wrongEnv.Message)
	assert.Equal(t, wrongEnv.Message, unknownEnv.Message)
	assert.Equal(t, string(wrongEnv.Error), string(unknownEnv.Error))

	w, env = do(r, http.MethodPost, "/api/auth/login", `{"email":"a@x.com"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, application.MsgLoginRequired, env.Message)
}

func TestMe(t *testing.T) {
	r := newTestEngine(t, helpers.NewJWTManager(testSecret, time.Hour), nil)
	_, env := do(r, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"pw123","name":"Ann"}`, nil)
	var reg authData
	require.NoError(t, json.Unmarshal(env.Data, &reg))

	w, env := do(r, http.MethodGet, "/api/auth/me", "", bearer(reg.Token))
	require.Equal(t, http.StatusOK, w.Code)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, reg.User["id"], profile["id"])
	assert.Equal(t, "a@x.com", profile["email"])
	assert.NotContains(t, profile, "password_hash")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestMe_Rejections(t *testing.T) {
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	r := newTestEngine(t, jwt, nil)

	other, _, err := helpers.NewJWTManager("another-secret-0123456789abcdefghij", time.Hour).GenerateToken("u1")
	require.NoError(t, err)
	expired, _, err := helpers.NewJWTManager(testSecret, -time.Minute).GenerateToken("u1")
	require.NoError(t, err)
	ghost, _, err := jwt.GenerateToken("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  map[string]string
		message string
	}{
		{"no header", nil, application.MsgMissingToken},
		{"wrong scheme", map[string]string{"Authorization": "Basic abc"}, application.MsgMissingToken},
		{"garbage", bearer("not-a-jwt"), application.MsgInvalidToken},
		{"other key", bearer(other), application.MsgInvalidToken},
		{"expired", bearer(expired), application.MsgInvalidToken},
		{"unknown user", bearer(ghost), application.MsgInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(r, http.MethodGet, "/api/auth/me", "", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestSessionCookie(t *testing.T) {
	r := newTestEngine(t, helpers.NewJWTManager(testSecret, time.Hour), helpers.NewCookie("", false))

	w, _ := do(r, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"pw123","name":"Ann"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var session *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.SessionCookieName {
			session = ck
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
