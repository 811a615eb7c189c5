package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/internal/application"
	"github.com/oksasatya/go-credential-service/internal/interface/middleware"
	"github.com/oksasatya/go-credential-service/pkg/apperror"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
	"github.com/oksasatya/go-credential-service/pkg/response"
	"github.com/oksasatya/go-credential-service/pkg/validation"
)

// AuthHandler serves /api/auth. Cookies is nil when the session cookie is
// disabled.
type AuthHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

// Presence is checked by the service so blank and missing fields get the
// same message; binding only bounds lengths.
type registerRequest struct {
	Email    string `json:"email" binding:"max=254"`
	Password string `json:"password"`
	Name     string `json:"name" binding:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"max=254"`
	Password string `json:"password"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setCookie(c, res)
	response.Success(c, http.StatusCreated, res, "registered")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setCookie(c, res)
	response.Success(c, http.StatusOK, res, "login successful")
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, application.MsgMissingToken, nil)
		return
	}
	response.Success(c, http.StatusOK, h.Svc.GetProfile(u), "profile")
}

func (h *AuthHandler) setCookie(c *gin.Context, res *application.AuthResult) {
	if h.Cookies == nil {
		return
	}
	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
}

// fail maps a service error to its status. The cause of internal errors is
// logged and never sent to the client.
func (h *AuthHandler) fail(c *gin.Context, err error) {
	ae := apperror.From(err)
	if ae.Kind == apperror.KindInternal {
		helpers.LogError(h.Logger, ae.Message, ae.Err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		})
	}
	response.Error[any](c, ae.Status(), ae.Message, ae.Details)
}
