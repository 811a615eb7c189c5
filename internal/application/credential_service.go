package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	repo "github.com/oksasatya/go-credential-service/internal/domain/repository"
	"github.com/oksasatya/go-credential-service/pkg/apperror"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
)

// Client-visible messages.
const (
	MsgRegisterRequired   = "Email, password and name are required"
	MsgLoginRequired      = "Email and password are required"
	MsgEmailTaken         = "Email already registered"
	MsgInvalidCredentials = "Invalid email or password"
	MsgMissingToken       = "missing access token"
	MsgInvalidToken       = "invalid or expired token"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
)

// Operation names used for metrics.
const (
	OpRegister      = "register"
	OpLogin         = "login"
	OpVerifySession = "verify_session"
)

// Notifier is told about newly registered users.
type Notifier interface {
	UserRegistered(ctx context.Context, u *entity.User) error
}

// MetricsRecorder counts operation outcomes.
type MetricsRecorder interface {
	RecordOperation(operation, outcome string)
}

type Service struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Notifier Notifier
	Metrics  MetricsRecorder
	Logger   *logrus.Logger
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User      entity.Profile `json:"user"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, notifier Notifier, metrics MetricsRecorder, logger *logrus.Logger) *Service {
	return &Service{
		Repo:     repo,
		JWT:      jwt,
		Notifier: notifier,
		Metrics:  metrics,
		Logger:   logger,
	}
}

// dummyHash is compared against when a login email is unknown so both
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := helpers.HashPassword(uuid.NewString())
	return h
})

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (s *Service) record(op string, err error) {
	if s.Metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = apperror.KindOf(err).String()
	}
	s.Metrics.RecordOperation(op, outcome)
}

// Register creates a user and returns its profile with a fresh session token.
// Duplicate emails are detected by the store's uniqueness constraint.
func (s *Service) Register(ctx context.Context, in RegisterInput) (res *AuthResult, err error) {
	defer func() { s.record(OpRegister, err) }()

	if blank(in.Email) || blank(in.Password) || blank(in.Name) {
		return nil, apperror.Validation(MsgRegisterRequired, nil)
	}
	if len(in.Password) > helpers.MaxPasswordBytes {
		return nil, apperror.Validation(MsgPasswordTooLong, map[string]string{"password": "too long"})
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal("error registering user", err)
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, apperror.Conflict(MsgEmailTaken)
		}
		return nil, apperror.Internal("error registering user", err)
	}

	res, err = s.issue(u, "error registering user")
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if nErr := s.Notifier.UserRegistered(ctx, u); nErr != nil {
			helpers.LogWarn(s.Logger, "registration notification failed", nErr, logrus.Fields{"user_id": u.ID})
		}
	}
	return res, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (res *AuthResult, err error) {
	defer func() { s.record(OpLogin, err) }()

	if blank(email) || blank(password) {
		return nil, apperror.Validation(MsgLoginRequired, nil)
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.CompareHashAndPassword(dummyHash(), password)
			return nil, apperror.Auth(MsgInvalidCredentials, err)
		}
		return nil, apperror.Internal("error logging in", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, apperror.Auth(MsgInvalidCredentials, nil)
	}
	return s.issue(u, "error logging in")
}

// VerifySession resolves a presented token to its user.
func (s *Service) VerifySession(ctx context.Context, token string) (u *entity.User, err error) {
	defer func() { s.record(OpVerifySession, err) }()

	if blank(token) {
		return nil, apperror.Auth(MsgMissingToken, nil)
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, apperror.Auth(MsgInvalidToken, err)
	}
	u, err = s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Auth(MsgInvalidToken, err)
		}
		return nil, apperror.Internal("error verifying session", err)
	}
	return u, nil
}

// GetProfile projects u without its password hash.
func (s *Service) GetProfile(u *entity.User) entity.Profile {
	return u.Profile()
}

func (s *Service) issue(u *entity.User, failMsg string) (*AuthResult, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, apperror.Internal(failMsg, err)
	}
	return &AuthResult{User: u.Profile(), Token: token, ExpiresAt: exp}, nil
}
