package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse 成功响应结构
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Success 成功响应（带提示消息）
func Success(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: msg,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, msg string) {
	c.JSON(http.StatusCreated, MessageResponse{
		Success: true,
		Message: msg,
	})
}

// OK 成功响应（自定义数据结构）
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// CreatedData 创建成功响应（自定义数据结构）
func CreatedData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应，statusCode 即 HTTP 状态码
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorResponse{
		Error:     msg,
		RequestID: requestID(c),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
