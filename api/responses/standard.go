// Package responses writes the API's success envelopes and RFC 7807 problem
// responses.
package responses

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// StandardResponse represents a standard API response format
type StandardResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	StandardResponse
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	PerPage      int   `json:"per_page"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

func envelope(c *gin.Context, data interface{}, message string) StandardResponse {
	return StandardResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC(),
		TraceID:   getTraceID(c),
	}
}

// Success sends a 200 response
func Success(c *gin.Context, data interface{}, message ...string) {
	c.JSON(http.StatusOK, envelope(c, data, pick(message, "Operation successful")))
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}, message ...string) {
	c.JSON(http.StatusCreated, envelope(c, data, pick(message, "Resource created successfully")))
}

// Paginated sends one page of a list together with its pagination metadata
func Paginated(c *gin.Context, data interface{}, page models.Page, total int64, message ...string) {
	c.JSON(http.StatusOK, PaginatedResponse{
		StandardResponse: envelope(c, data, pick(message, "Data retrieved successfully")),
		Pagination:       CreatePaginationMeta(page, total),
	})
}

// Error sends an error response using RFC 7807 format
func Error(c *gin.Context, problemDetails *errors.ProblemDetails) {
	if problemDetails.TraceID == "" {
		if traceID := getTraceID(c); traceID != "" {
			problemDetails.WithTraceID(traceID)
		}
	}
	if _, ok := problemDetails.Extra["timestamp"]; !ok {
		problemDetails.WithExtra("timestamp", time.Now().UTC().Format(time.RFC3339))
	}

	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(problemDetails.Status, problemDetails)
}

// Fail maps err to problem details and aborts the request. Server errors are
// attached to the context so the request logger records the cause.
func Fail(c *gin.Context, err error) {
	problem := errors.FromError(err, c.Request.URL.Path)
	if problem.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Error(c, problem)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, detail string) {
	Error(c, errors.NewUnauthorizedError(detail, c.Request.URL.Path))
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, detail string) {
	Error(c, errors.NewForbiddenError(detail, c.Request.URL.Path))
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, detail string) {
	Error(c, errors.NewNotFoundError(detail, c.Request.URL.Path))
}

// TooManyRequests sends a 429 Too Many Requests response
func TooManyRequests(c *gin.Context, detail string) {
	Error(c, errors.NewRateLimitError(detail, c.Request.URL.Path))
}

func pick(message []string, fallback string) string {
	if len(message) > 0 && message[0] != "" {
		return message[0]
	}
	return fallback
}

// getTraceID prefers the active span's trace id and falls back to the request id.
func getTraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// CreatePaginationMeta creates pagination metadata
func CreatePaginationMeta(page models.Page, totalRecords int64) *PaginationMeta {
	page = page.Normalize()
	totalPages := int((totalRecords + int64(page.PerPage) - 1) / int64(page.PerPage))
	if totalPages < 1 {
		totalPages = 1
	}

	return &PaginationMeta{
		CurrentPage:  page.Page,
		PerPage:      page.PerPage,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		HasNext:      page.Page < totalPages,
		HasPrev:      page.Page > 1,
	}
}
