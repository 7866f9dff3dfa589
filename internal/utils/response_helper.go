package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhouhaelaouni/tunimed/internal/serviceerror"
)

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendServiceError maps a service error onto its transport status code
// and writes the error body.
func SendServiceError(c *gin.Context, svcErr *serviceerror.ServiceError) {
	c.JSON(statusCodeFor(svcErr), svcErr)
}

// SendBadRequestError sends a 400 Bad Request for transport-level
// failures (unreadable body, bad query parameter).
func SendBadRequestError(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest,
		serviceerror.CustomServiceError(serviceerror.ValidationError, description))
}

func statusCodeFor(svcErr *serviceerror.ServiceError) int {
	if svcErr.Type == serviceerror.ServerErrorType {
		return http.StatusInternalServerError
	}

	switch svcErr.Code {
	case serviceerror.ForbiddenError.Code:
		return http.StatusForbidden
	case serviceerror.NotFoundError.Code:
		return http.StatusNotFound
	case serviceerror.InvalidStatusError.Code, serviceerror.ConflictError.Code:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// GetUserIDFromContext extracts the acting user ID set by the identity
// middleware.
func GetUserIDFromContext(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	return userID.(string)
}
