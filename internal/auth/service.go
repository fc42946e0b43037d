// Package auth issues and verifies API credentials: bcrypt passwords, HS256
// JWT access/refresh pairs and optional TOTP second factor.
package auth

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aidin1998/laptrack/internal/config"
	"github.com/Aidin1998/laptrack/internal/store"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/metrics"
	"github.com/Aidin1998/laptrack/pkg/models"
	"github.com/Aidin1998/laptrack/pkg/validation"
)

// Service implements registration, login and token lifecycle.
type Service struct {
	users     store.UserStore
	validator *validation.Validator
	revoked   RevocationList
	cfg       config.JWTConfig
	logger    *zap.Logger
	now       func() time.Time
	cost      int
}

func NewService(users store.UserStore, v *validation.Validator, revoked RevocationList, cfg config.JWTConfig, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		validator: v,
		revoked:   revoked,
		cfg:       cfg,
		logger:    logger.Named("auth"),
		now:       time.Now,
		cost:      bcrypt.DefaultCost,
	}
}

// LoginResult is returned by Login and Refresh.
type LoginResult struct {
	*TokenPair
	User *models.User `json:"user"`
}

func audit(event string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	metrics.AuthEvents.WithLabelValues(event, result).Inc()
}

// HashPassword hashes a plaintext password with the service's bcrypt cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register creates a staff user.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (user *models.User, err error) {
	defer func() { audit("register", err) }()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	s.validator.SanitizeAll(&req.Name)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	return s.CreateUser(ctx, req.Email, req.Name, req.Password, models.RoleStaff)
}

// CreateUser stores a user with the given role. Used by Register and seeding.
func (s *Service) CreateUser(ctx context.Context, email, name, password string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, errors.Invalid.Explain("unknown role %q", role)
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()), zap.String("role", string(role)))
	return user, nil
}

// Login checks the password and, when enabled, the TOTP code.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (res *LoginResult, err error) {
	defer func() { audit("login", err) }()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, errors.Unauthorized.Explain("invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.Unauthorized.Explain("invalid credentials")
	}

	if user.MFAEnabled {
		if req.TOTPCode == "" {
			return nil, errors.Unauthorized.Explain("totp code required")
		}
		if !s.validateCode(req.TOTPCode, user.TOTPSecret) {
			return nil, errors.Unauthorized.Explain("invalid totp code")
		}
	}

	now := s.now().UTC()
	user.LastLoginAt = &now
	if err := s.users.UpdateUser(ctx, user); err != nil {
		s.logger.Warn("failed to record login time", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{TokenPair: pair, User: user}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked atomically, so of several concurrent refreshes only one succeeds.
func (s *Service) Refresh(ctx context.Context, req *models.RefreshRequest) (res *LoginResult, err error) {
	defer func() { audit("refresh", err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	claims, err := s.parseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userFromSubject(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	first, err := s.revoked.RevokeOnce(ctx, claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, errors.Unauthorized.Explain("refresh token has been revoked")
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{TokenPair: pair, User: user}, nil
}

// Logout revokes the refresh token. Access tokens expire on their own.
func (s *Service) Logout(ctx context.Context, req *models.RefreshRequest) (err error) {
	defer func() { audit("logout", err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		return err
	}
	claims, err := s.parseRefreshToken(req.RefreshToken)
	if err != nil {
		return err
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Me returns the user behind an access token subject.
func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.userFromSubject(ctx, userID)
}

func (s *Service) userFromSubject(ctx context.Context, subject string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return nil, errors.Unauthorized.Explain("invalid token subject")
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, errors.Unauthorized.Explain("user no longer exists")
		}
		return nil, err
	}
	return user, nil
}
