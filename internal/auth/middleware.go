package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/api/responses"
	"github.com/Aidin1998/laptrack/internal/config"
	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// Gin context keys set by RequireAuth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextEmail  = "email"
)

// CustomClaims are the non-registered claims carried by access tokens.
type CustomClaims struct {
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"token_type"`
}

// Validate rejects refresh tokens presented as access tokens.
func (c *CustomClaims) Validate(context.Context) error {
	if c.TokenType != tokenTypeAccess {
		return fmt.Errorf("token_type %q is not an access token", c.TokenType)
	}
	if !c.Role.Valid() {
		return fmt.Errorf("unknown role %q", c.Role)
	}
	return nil
}

// Middleware validates bearer access tokens.
type Middleware struct {
	validator *validator.Validator
	logger    *zap.Logger
}

func NewMiddleware(cfg config.JWTConfig, logger *zap.Logger) (*Middleware, error) {
	secret := []byte(cfg.Secret)
	keyFunc := func(context.Context) (interface{}, error) {
		return secret, nil
	}

	v, err := validator.New(
		keyFunc,
		validator.HS256,
		cfg.Issuer,
		[]string{cfg.Audience},
		validator.WithAllowedClockSkew(30*time.Second),
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the validator: %w", err)
	}
	return &Middleware{validator: v, logger: logger.Named("auth")}, nil
}

// RequireAuth rejects requests without a valid access token with 401 and
// exposes the caller's id, role and email on the gin context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var failure error
		errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
			failure = err
		}

		middleware := jwtmiddleware.New(
			m.validator.ValidateToken,
			jwtmiddleware.WithErrorHandler(errorHandler),
			jwtmiddleware.WithTokenExtractor(jwtmiddleware.AuthHeaderTokenExtractor),
		)

		reached := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			reached = true
			claims, _ := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			custom, _ := claims.CustomClaims.(*CustomClaims)

			userID := claims.RegisteredClaims.Subject
			c.Set(ContextUserID, userID)
			c.Set(ContextRole, custom.Role)
			c.Set(ContextEmail, custom.Email)
			c.Request = r.WithContext(events.WithActor(r.Context(), userID))
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)

		if !reached {
			detail := "missing or invalid bearer token"
			if failure != nil {
				m.logger.Debug("rejected bearer token", zap.Error(failure))
				if errors.Is(failure, jwtmiddleware.ErrJWTMissing) {
					detail = "authorization header is required"
				}
			}
			responses.Unauthorized(c, detail)
			return
		}
		c.Next()
	}
}

// RequireRole allows only the listed roles. Admins always pass.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFrom(c)
		if !ok {
			responses.Forbidden(c, "role not found")
			return
		}
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		responses.Forbidden(c, "insufficient role")
	}
}

// UserID returns the authenticated user's id.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func RoleFrom(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok && role != ""
}
