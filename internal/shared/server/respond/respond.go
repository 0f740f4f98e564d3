package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InternalErrorMessage is the only text clients see for unexpected failures.
const InternalErrorMessage = "Analysis failed. Please verify your API key and inputs, then try again."

// ErrorResponse is the error envelope served by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error aborts the request with {"error": message}.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// OK writes a 200 JSON response.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
