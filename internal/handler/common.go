package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mediassist/internal/model"
	"mediassist/internal/pkg/ctxutil"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination reads limit/offset query params with sane bounds
func pagination(c *gin.Context) (limit, offset int64) {
	limit = defaultPageSize
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.ParseInt(c.Query("offset"), 10, 64); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// subjectID pulls the authenticated user id from the request context.
// Responds 401 and returns false when the auth middleware did not run.
func subjectID(c *gin.Context) (string, bool) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Code:    40101,
			Message: "Unauthorized",
		})
		return "", false
	}
	return userID, true
}

// parseTimeQuery reads an optional RFC 3339 time query param.
// Responds 400 and returns the parse error on a malformed value.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid " + name,
			Detail:  err.Error(),
		})
		return nil, err
	}
	return &t, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Code:    40001,
		Message: "Invalid request body",
		Detail:  err.Error(),
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, model.ErrorResponse{
		Code:    40401,
		Message: message,
	})
}

func internalError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, model.ErrorResponse{
		Code:    50001,
		Message: message,
		Detail:  err.Error(),
	})
}
