package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-collection/internal/models"
	"movie-collection/internal/repository"
	"movie-collection/internal/utils"
	"movie-collection/internal/validation"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username string `json:"username" label:"Username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" label:"Password" validate:"required,min=6,max=100"`
	Email    string `json:"email" label:"Email" validate:"required,email,max=100"`
	FullName string `json:"full_name" label:"Full name" validate:"required,min=2,max=100"`
}

type LoginInput struct {
	// Username also accepts an email address.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by both register and login.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	VerifyToken(token string) (*TokenClaims, error)
}

type authService struct {
	users  repository.UserRepository
	audit  repository.AuditRepository
	tokens TokenService
	logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, audit repository.AuditRepository, tokens TokenService, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		audit:  audit,
		tokens: tokens,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = utils.Sanitize(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = utils.Sanitize(in.FullName)

	if err := fromValidation(validation.Struct(&in)); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, conflict("Username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Password: string(hash),
		Email:    in.Email,
		FullName: in.FullName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created user: %w", err)
	}
	if created == nil {
		return nil, errors.New("registration completed but user data not found")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  created.ID,
		"username": created.Username,
	}).Info("User registered")
	logActivity(ctx, s.audit, s.logger, created.ID, models.ActionRegister, "User registered")

	return s.issue(created)
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	// emails are stored lower-cased at registration
	if strings.Contains(in.Username, "@") {
		in.Username = strings.ToLower(in.Username)
	}

	if err := fromValidation(validation.Struct(&in)); err != nil {
		return nil, err
	}

	user, err := s.users.FindByLogin(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.logger.WithField("login", in.Username).Debug("Login failed: unknown user")
		return nil, unauthorized("Username or password is incorrect")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		s.logger.WithField("user_id", user.ID).Debug("Login failed: wrong password")
		return nil, unauthorized("Username or password is incorrect")
	}

	logActivity(ctx, s.audit, s.logger, user.ID, models.ActionLogin, "User logged in")

	return s.issue(user)
}

func (s *authService) VerifyToken(token string) (*TokenClaims, error) {
	return s.tokens.Verify(token)
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
		ExpiresIn: s.tokens.TTL(),
	}, nil
}

// logActivity writes an audit row; a failure is logged and never surfaced.
func logActivity(ctx context.Context, audit repository.AuditRepository, logger *logrus.Logger, userID uint, action, details string) {
	if audit == nil {
		return
	}
	err := audit.LogActivity(ctx, &models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"action":  action,
		}).Warn("Failed to write activity log")
	}
}
