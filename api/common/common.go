package common

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/anoixa/tripill/internal/apperr"
	"github.com/anoixa/tripill/utils"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey 认证中间件写入的当前用户ID
	ContextUserIDKey = "user_id"
	// ContextRequestIDKey 请求ID
	ContextRequestIDKey = "request_id"
)

type Response struct {
	Status string      `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

func Respond(c *gin.Context, httpStatus int, status string, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Status: status,
		Msg:    message,
		Data:   data,
	})
}

// RespondSuccess sends a success response with data.
func RespondSuccess(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, "success", "", data)
}

// RespondCreated sends a 201 response with data.
func RespondCreated(c *gin.Context, data interface{}) {
	Respond(c, http.StatusCreated, "success", "", data)
}

// RespondSuccessMessage sends a success response with message and data.
func RespondSuccessMessage(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusOK, "success", message, data)
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	Respond(c, httpStatus, "error", message, nil)
}

// RespondErrorAbort sends an error response and stops the handler chain.
func RespondErrorAbort(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, Response{Status: "error", Msg: message})
}

// StatusOf 错误类别对应的 HTTP 状态码
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondAppError 将服务层错误映射为 HTTP 响应，内部错误只记录日志不返回细节
func RespondAppError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		if utils.IsClientDisconnect(c.Request.Context(), err) {
			utils.LogIfDevf("[%s] client went away during %s %s", c.GetString(ContextRequestIDKey), c.Request.Method, c.Request.URL.Path)
		} else {
			log.Printf("[%s] %s %s failed for user %d: %v",
				c.GetString(ContextRequestIDKey), c.Request.Method, utils.SanitizeLogMessage(c.Request.URL.Path), CurrentUserID(c), err)
		}
	}
	RespondError(c, StatusOf(kind), apperr.Message(err))
}

// CurrentUserID 认证后的当前用户ID，未认证时为 0
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ContextUserIDKey)
}

var errBadID = errors.New("invalid id")

// ParamID 解析路径中的正整数ID，失败时直接写入 400 响应
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errBadID
	}
	return uint(id), nil
}
