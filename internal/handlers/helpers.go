package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhub/internal/services"
)

// tolerant to the types the middleware may store (int / int64 / float64 / string)
func getUserID(c *gin.Context) int64 {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// statusForResult maps service error codes onto HTTP statuses.
func statusForResult(res *services.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.ErrorCode {
	case services.CodeTaskNotFound:
		return http.StatusNotFound
	case services.CodeValidationError:
		return http.StatusUnprocessableEntity
	case services.CodeOperationNotAllowed:
		return http.StatusConflict
	case services.CodeMissingID, services.CodeInvalidJSON:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondResult(c *gin.Context, res *services.Result) {
	c.JSON(statusForResult(res), res)
}
