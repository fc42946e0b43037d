package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/laptrack/api/responses"
	"github.com/Aidin1998/laptrack/internal/auth"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// register godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Account"
// @Success      201   {object}  responses.StandardResponse
// @Failure      400   {object}  errors.ProblemDetails
// @Failure      409   {object}  errors.ProblemDetails
// @Router       /api/auth/register [post]
func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	user, err := s.auth.Register(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Created(c, user, "user registered")
}

// login godoc
// @Summary      Log in
// @Description  Returns an access/refresh token pair. totp_code is required once 2FA is enabled.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Credentials"
// @Success      200   {object}  responses.StandardResponse
// @Failure      401   {object}  errors.ProblemDetails
// @Router       /api/auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	res, err := s.auth.Login(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, res, "logged in")
}

func (s *Server) refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	res, err := s.auth.Refresh(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, res, "token refreshed")
}

func (s *Server) logout(c *gin.Context) {
	var req models.RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	if err := s.auth.Logout(c.Request.Context(), &req); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, nil, "logged out")
}

func (s *Server) me(c *gin.Context) {
	user, err := s.auth.Me(c.Request.Context(), auth.UserID(c))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, user)
}

// --- 2FA HANDLERS ---

func (s *Server) enable2FA(c *gin.Context) {
	setup, err := s.auth.EnableTOTP(c.Request.Context(), auth.UserID(c))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, setup, "scan the secret and verify a code to finish enabling 2FA")
}

func (s *Server) verify2FA(c *gin.Context) {
	var req models.TOTPCodeRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	if err := s.auth.VerifyTOTP(c.Request.Context(), auth.UserID(c), &req); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, gin.H{"mfa_enabled": true}, "2FA enabled")
}

func (s *Server) disable2FA(c *gin.Context) {
	var req models.DisableTOTPRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	if err := s.auth.DisableTOTP(c.Request.Context(), auth.UserID(c), &req); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, gin.H{"mfa_enabled": false}, "2FA disabled")
}
