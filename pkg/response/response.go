package response

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/pkg/logger"

    "go.uber.org/zap"
)

// 错误码固定词表
const (
    CodeNotFound      = "NOT_FOUND"
    CodeBadRequest    = "BAD_REQUEST"
    CodeConflict      = "CONFLICT"
    CodeUnauthorized  = "UNAUTHORIZED"
    CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// Meta 分页元信息
type Meta struct {
    Total int64 `json:"total"`
    Page  int   `json:"page"`
    Limit int   `json:"limit"`
}

// ErrorBody 错误体
type ErrorBody struct {
    Code    string `json:"code"`
    Message string `json:"message"`
}

// Response 统一响应信封
type Response struct {
    Success bool       `json:"success"`
    Data    any        `json:"data,omitempty"`
    Meta    *Meta      `json:"meta,omitempty"`
    Error   *ErrorBody `json:"error,omitempty"`
}

// Success 200 成功响应
func Success(c *gin.Context, data any) {
    c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created 201 创建成功
func Created(c *gin.Context, data any) {
    c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// Paginated 带分页元信息的成功响应
func Paginated(c *gin.Context, data any, total int64, page, limit int) {
    c.JSON(http.StatusOK, Response{
        Success: true,
        Data:    data,
        Meta:    &Meta{Total: total, Page: page, Limit: limit},
    })
}

func fail(c *gin.Context, status int, code, message string) {
    c.AbortWithStatusJSON(status, Response{
        Success: false,
        Error:   &ErrorBody{Code: code, Message: message},
    })
}

func BadRequest(c *gin.Context, message string) {
    fail(c, http.StatusBadRequest, CodeBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
    fail(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
    fail(c, http.StatusNotFound, CodeNotFound, message)
}

func Conflict(c *gin.Context, message string) {
    fail(c, http.StatusConflict, CodeConflict, message)
}

// TooManyRequests 429，仅用于限流中间件
func TooManyRequests(c *gin.Context) {
    fail(c, http.StatusTooManyRequests, CodeBadRequest, "Too many requests")
}

// InternalError 500，内部细节只进日志不出响应
func InternalError(c *gin.Context, err error) {
    logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
    fail(c, http.StatusInternalServerError, CodeInternalError, "Internal server error")
}
