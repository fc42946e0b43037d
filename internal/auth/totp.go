package auth

import (
	"context"

	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// TOTPSetup represents TOTP setup information
type TOTPSetup struct {
	Secret string `json:"secret"`
	URL    string `json:"otpauth_url"`
}

func (s *Service) validateCode(code, secret string) bool {
	if secret == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, s.now().UTC(), totp.ValidateOpts{
		Period: 30,
		Skew:   1,
		Digits: 6,
	})
	return err == nil && ok
}

// EnableTOTP generates a pending secret. MFA is switched on only after
// VerifyTOTP confirms the user can produce codes for it.
func (s *Service) EnableTOTP(ctx context.Context, userID string) (setup *TOTPSetup, err error) {
	defer func() { audit("totp_enable", err) }()

	user, err := s.userFromSubject(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.MFAEnabled {
		return nil, errors.Conflict.Explain("two-factor authentication is already enabled")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.cfg.Issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, err
	}

	user.TOTPSecret = key.Secret()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return &TOTPSetup{Secret: key.Secret(), URL: key.URL()}, nil
}

// VerifyTOTP confirms a pending secret and turns MFA on.
func (s *Service) VerifyTOTP(ctx context.Context, userID string, req *models.TOTPCodeRequest) (err error) {
	defer func() { audit("totp_verify", err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		return err
	}
	user, err := s.userFromSubject(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" {
		return errors.Invalid.Explain("two-factor setup has not been started")
	}
	if !s.validateCode(req.Code, user.TOTPSecret) {
		return errors.Unauthorized.Explain("invalid totp code")
	}

	user.MFAEnabled = true
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}
	s.logger.Info("two-factor authentication enabled", zap.String("user_id", userID))
	return nil
}

// DisableTOTP turns MFA off after re-checking the password.
func (s *Service) DisableTOTP(ctx context.Context, userID string, req *models.DisableTOTPRequest) (err error) {
	defer func() { audit("totp_disable", err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		return err
	}
	user, err := s.userFromSubject(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return errors.Unauthorized.Explain("invalid credentials")
	}

	user.MFAEnabled = false
	user.TOTPSecret = ""
	return s.users.UpdateUser(ctx, user)
}
