package util

import (
	"errors"
	"net/http"
	"school_quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func write(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, data interface{}) {
	write(c, http.StatusCreated, "created", data)
}

func Error(c *gin.Context, code int, message string) {
	write(c, code, message, nil)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal server error")
}

// LogInternalError 内部错误只写日志，不把细节返回给客户端
func LogInternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	logger.Log.Error("request failed", zap.String("route", c.FullPath()), zap.Error(err))
	InternalServerError(c)
}

// 按顺序匹配，先命中者生效
var errorStatus = []struct {
	kind   error
	status int
}{
	{ErrValidation, http.StatusBadRequest},
	{ErrNotFound, http.StatusNotFound},
	{ErrConflict, http.StatusConflict},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrAccountDisabled, http.StatusForbidden},
	{ErrPermissionDenied, http.StatusForbidden},
}

// HandleError 按错误类别输出响应，未知错误记录日志并返回 500
func HandleError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			Error(c, e.status, err.Error())
			return
		}
	}
	LogInternalError(c, err)
}
