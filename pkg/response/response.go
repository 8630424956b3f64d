package response

import (
	"net/http"

	"im-message/pkg/errcode"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`             // 状态码：0表示成功，其他表示错误
	Message string      `json:"message"`          // 响应消息
	Reason  string      `json:"reason,omitempty"` // 业务错误类型，例如 Message:GroupNotFound
	Data    interface{} `json:"data,omitempty"`   // 响应数据
	Error   string      `json:"error,omitempty"`  // 错误详情（仅在开发环境显示）
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails 带错误详情的错误响应
func ErrorWithDetails(c *gin.Context, code int, message string, err error) {
	response := Response{
		Code:    code,
		Message: message,
	}

	// 在开发环境下显示错误详情
	if gin.Mode() == gin.DebugMode && err != nil {
		response.Error = err.Error()
	}

	c.JSON(http.StatusOK, response)
}

// FromError 按错误类型输出响应
// 业务错误带上 Reason，基础设施错误统一按500处理且不暴露细节
func FromError(c *gin.Context, err error) {
	code := errcode.CodeOf(err)
	if code == "" {
		ErrorWithDetails(c, http.StatusInternalServerError, "服务器内部错误", err)
		return
	}
	c.JSON(http.StatusOK, Response{
		Code:    StatusOf(err),
		Message: err.Error(),
		Reason:  string(code),
	})
}

// StatusOf 业务错误对应的状态码
func StatusOf(err error) int {
	switch code := errcode.CodeOf(err); {
	case code == "":
		return http.StatusInternalServerError
	case errcode.IsInputError(err):
		return http.StatusBadRequest
	case code == errcode.GroupNotFound:
		return http.StatusNotFound
	default:
		return http.StatusForbidden
	}
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// PageResponse 分页列表
type PageResponse struct {
	Items      interface{} `json:"items"`
	TotalCount int64       `json:"total_count"`
}
