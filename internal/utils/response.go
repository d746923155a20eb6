package utils

import (
	"github.com/gin-gonic/gin"
)

// Response JSON envelope for the non-HTML endpoints
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Success bool        `json:"success"`
}

// Success writes a 200 envelope
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    200,
		Message: "success",
		Data:    data,
		Success: true,
	})
}

// Error writes a failure envelope
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
		Success: false,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "rate limit exceeded"
	}
	Error(c, 429, message)
}

// BadGateway 502
func BadGateway(c *gin.Context, message string) {
	if message == "" {
		message = "upstream request failed"
	}
	Error(c, 502, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "forbidden"
	}
	Error(c, 403, message)
}
