package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// bindJSON decodes the request body into dst. Field validation happens in the
// service layer.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errPayloadTooLarge(c, tooLarge.Limit)
		}
		return errors.Invalid.Explain("malformed request body: %v", err)
	}
	return nil
}

// bindQuery decodes query parameters into dst.
func bindQuery(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return errors.Invalid.Explain("invalid query parameters: %v", err)
	}
	return nil
}

func bindPage(c *gin.Context) (models.Page, error) {
	var page models.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, errors.Invalid.Explain("invalid pagination parameters")
	}
	return page.Normalize(), nil
}

// queryID parses an optional ObjectID query parameter.
func queryID(c *gin.Context, name string) (primitive.ObjectID, error) {
	raw := c.Query(name)
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	id, ok := models.ParseID(raw)
	if !ok {
		return primitive.NilObjectID, errors.Invalid.
			Explain("invalid %s", name).
			WithField("objectid", name, name+" must be a valid id")
	}
	return id, nil
}

func errUnavailable(c *gin.Context, detail string) *errors.ProblemDetails {
	return errors.NewProblemDetails(errors.TypeUnavailable, errors.TitleUnavailable,
		http.StatusServiceUnavailable, detail, c.Request.URL.Path)
}

func errPayloadTooLarge(c *gin.Context, limit int64) *errors.ProblemDetails {
	return errors.NewProblemDetails(errors.TypeValidationError, "Payload Too Large",
		http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", limit), c.Request.URL.Path)
}

func errMethodNotAllowed(c *gin.Context) *errors.ProblemDetails {
	return errors.NewProblemDetails("about:blank", http.StatusText(http.StatusMethodNotAllowed),
		http.StatusMethodNotAllowed, c.Request.Method+" is not supported on this route", c.Request.URL.Path)
}
