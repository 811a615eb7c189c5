package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieManager_SetToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NewCookie("example.com", true).SetToken(c, "tok", time.Now().Add(time.Hour))

	res := w.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, SessionCookieName, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.InDelta(t, 3600, ck.MaxAge, 5)
}

func TestMaxAgeFrom_PastIsZero(t *testing.T) {
	assert.Equal(t, 0, maxAgeFrom(time.Now().Add(-time.Minute)))
}
