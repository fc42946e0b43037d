// Package api exposes the inventory service over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/api/responses"
	_ "github.com/Aidin1998/laptrack/docs"
	"github.com/Aidin1998/laptrack/internal/auth"
	"github.com/Aidin1998/laptrack/internal/inventory"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options wires the server's collaborators.
type Options struct {
	Logger         *zap.Logger
	Inventory      *inventory.Service
	Auth           *auth.Service
	AuthMiddleware *auth.Middleware
	Store          Pinger
	// RateLimiter guards /api. Nil disables rate limiting.
	RateLimiter gin.HandlerFunc
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// set the client IP. Empty trusts none, so the client IP is the peer.
	TrustedProxies []string
	CORSOrigins    []string
	// Tracing enables otelgin spans under ServiceName.
	Tracing     bool
	ServiceName string
}

// Server represents the API server
type Server struct {
	router    *gin.Engine
	logger    *zap.Logger
	inventory *inventory.Service
	auth      *auth.Service
	authMW    *auth.Middleware
	store     Pinger
	limiter   gin.HandlerFunc
}

// NewServer builds the router with its middleware chain and routes.
func NewServer(opts Options) (*Server, error) {
	s := &Server{
		logger:    opts.Logger,
		inventory: opts.Inventory,
		auth:      opts.Auth,
		authMW:    opts.AuthMiddleware,
		store:     opts.Store,
		limiter:   opts.RateLimiter,
	}

	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(ginzap.RecoveryWithZap(opts.Logger, true))
	router.Use(requestID())
	router.Use(ginzap.GinzapWithConfig(opts.Logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health", "/metrics"},
		Context: func(c *gin.Context) []zap.Field {
			fields := []zap.Field{zap.String("request_id", c.GetString(responses.RequestIDKey))}
			if userID := auth.UserID(c); userID != "" {
				fields = append(fields, zap.String("user_id", userID))
			}
			return fields
		},
	}))
	if opts.Tracing {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(metricsMiddleware())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.CORSOrigins) == 0 || (len(opts.CORSOrigins) == 1 && opts.CORSOrigins[0] == "*") {
		// Credentials cannot be combined with a literal "*" origin.
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = opts.CORSOrigins
	}
	router.Use(cors.New(corsConfig))

	router.NoRoute(func(c *gin.Context) {
		responses.NotFound(c, "route not found")
	})
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		responses.Error(c, errMethodNotAllowed(c))
	})

	s.router = router
	s.registerRoutes()
	return s, nil
}

// Router returns the internal Gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.router.Group("/api")
	if s.limiter != nil {
		api.Use(s.limiter)
	}
	api.Use(bodyLimit(maxBodySize))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refresh)
		authGroup.POST("/logout", s.logout)
	}

	protected := api.Group("")
	protected.Use(s.authMW.RequireAuth())

	me := protected.Group("/auth")
	{
		me.GET("/me", s.me)
		me.POST("/2fa/enable", s.enable2FA)
		me.POST("/2fa/verify", s.verify2FA)
		me.POST("/2fa/disable", s.disable2FA)
	}

	managers := auth.RequireRole(models.RoleManager)

	laptops := protected.Group("/laptops")
	{
		laptops.POST("", managers, s.createLaptop)
		laptops.GET("", s.listLaptops)
		laptops.GET("/:id", s.getLaptop)
		laptops.GET("/:id/history", s.laptopHistory)
		laptops.PUT("/:id", managers, s.updateLaptop)
		laptops.DELETE("/:id", managers, s.deleteLaptop)
	}

	employees := protected.Group("/employees")
	{
		employees.POST("", managers, s.createEmployee)
		employees.GET("", s.listEmployees)
		employees.GET("/:id", s.getEmployee)
		employees.GET("/:id/assignments", s.employeeAssignments)
		employees.PUT("/:id", managers, s.updateEmployee)
		employees.DELETE("/:id", managers, s.deleteEmployee)
	}

	assignments := protected.Group("/assignments")
	{
		assignments.POST("", s.createAssignment)
		assignments.GET("", s.listAssignments)
		assignments.GET("/:id", s.getAssignment)
		assignments.POST("/:id/return", s.returnAssignment)
		assignments.DELETE("/:id", managers, s.deleteAssignment)
	}

	maintenance := protected.Group("/maintenance")
	{
		maintenance.POST("", s.createMaintenance)
		maintenance.GET("", s.listMaintenance)
		maintenance.GET("/:id", s.getMaintenance)
		maintenance.PUT("/:id", s.updateMaintenance)
		maintenance.DELETE("/:id", managers, s.deleteMaintenance)
	}

	issues := protected.Group("/issues")
	{
		issues.POST("", s.createIssue)
		issues.GET("", s.listIssues)
		issues.GET("/:id", s.getIssue)
		issues.PUT("/:id", s.updateIssue)
		issues.DELETE("/:id", managers, s.deleteIssue)
	}
}

// healthCheck godoc
// @Summary      Service health
// @Tags         system
// @Produce      json
// @Success      200  {object}  responses.StandardResponse
// @Failure      503  {object}  errors.ProblemDetails
// @Router       /health [get]
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		responses.Error(c, errUnavailable(c, "store is unreachable"))
		return
	}
	responses.Success(c, gin.H{"status": "ok", "store": "ok"}, "healthy")
}
