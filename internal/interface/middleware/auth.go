package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	"github.com/oksasatya/go-credential-service/pkg/apperror"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
	"github.com/oksasatya/go-credential-service/pkg/response"
)

const CtxUserKey = "user"

// SessionVerifier resolves a session token to a user.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*entity.User, error)
}

// Auth reads the bearer token (or the session cookie when no Authorization
// header is sent), verifies it and stores the user in the Gin context.
func Auth(v SessionVerifier, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := v.VerifySession(c.Request.Context(), tokenFromRequest(c))
		if err != nil {
			ae := apperror.From(err)
			if ae.Kind == apperror.KindInternal {
				helpers.LogError(logger, "session verification failed", ae.Err, logrus.Fields{
					"request_id": c.GetString("request_id"),
					"path":       c.Request.URL.Path,
				})
			}
			response.Abort(c, ae.Status(), ae.Message, nil)
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if ck, err := c.Cookie(helpers.SessionCookieName); err == nil {
		return ck
	}
	return ""
}
