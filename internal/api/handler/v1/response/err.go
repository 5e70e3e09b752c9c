package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oaktheatre/boxoffice/internal/domain"
)

type Err struct {
	statusCode int
	internal   error

	RequestID string `json:"request_id,omitempty"`
	Msg       string `json:"msg"`
}

func newErr(statusCode int, err error, msg string) *Err {
	return &Err{
		statusCode: statusCode,
		internal:   err,
		Msg:        msg,
	}
}

// RenderErr writes the error response. Internal errors are logged with the
// request ID and hidden from the client.
func RenderErr(ctx *gin.Context, e *Err) {
	e.RequestID = requestid.Get(ctx)

	if e.statusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", e.RequestID),
			zap.Int("status", e.statusCode),
			zap.Error(e.internal))
	}

	ctx.AbortWithStatusJSON(e.statusCode, e)
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return newErr(http.StatusNotFound, nil, fmt.Sprintf("%v with %v %v is not found", resource, key, value))
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err, err.Error())
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "wrong credentials")
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "unauthorized")
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, "permission denied")
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "internal server error")
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
