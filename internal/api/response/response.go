package response

import (
	"errors"
	"net/http"
	"strings"

	"edufleex-go/internal/apperr"
	"edufleex-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RetryAfterSeconds 存储不可用时建议客户端的重试间隔
const RetryAfterSeconds = "5"

// Response 统一成功响应
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorInfo 错误详情
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Accepted(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusAccepted, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, errType string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorInfo{
			Code:    statusCode,
			Message: message,
			Type:    errType,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, "BadRequest", message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, "Unauthorized", message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, "Forbidden", message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, "NotFound", message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, "InternalServerError", message)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, "Conflict", message)
}

func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, "TooManyRequests", message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	c.Header("Retry-After", RetryAfterSeconds)
	Fail(c, http.StatusServiceUnavailable, "ServiceUnavailable", message)
}

// Error 按错误分类映射 HTTP 状态码。notFoundMsg 为空时使用默认提示。
func Error(c *gin.Context, err error, notFoundMsg ...string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		BadRequest(c, "请求参数无效: "+detail(err, apperr.ErrInvalidArgument))
	case errors.Is(err, apperr.ErrNotFound):
		msg := "资源不存在"
		if len(notFoundMsg) > 0 && notFoundMsg[0] != "" {
			msg = notFoundMsg[0]
		}
		NotFound(c, msg)
	case errors.Is(err, apperr.ErrConflict):
		Conflict(c, "资源已存在: "+detail(err, apperr.ErrConflict))
	case errors.Is(err, apperr.ErrStoreUnavailable):
		logger.Warn("Store unavailable", zap.String("path", c.Request.URL.Path), zap.Error(err))
		ServiceUnavailable(c, "服务暂时不可用，请稍后重试")
	default:
		logger.Error("Unhandled error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		InternalError(c, "服务器内部错误")
	}
}

// detail 取出分类标签之后的说明文字，例如 "invalid argument: limit must be ..." 中的后半段
func detail(err error, kind error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, kind.Error()+": "); i >= 0 {
		return msg[i+len(kind.Error())+2:]
	}
	return msg
}
