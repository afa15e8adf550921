package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/result"
)

// KeyCode holds the envelope code of the written response. The HTTP status
// is always 200, so metrics and access logs read the outcome from here.
const KeyCode = "resp.code"

type Resp struct {
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	Type    result.Kind `json:"type,omitempty"`
	Details any         `json:"details,omitempty"`
	Data    any         `json:"data"`
}

// New never leaves data null.
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data any) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error uses the default message of code unless customMsg is given.
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// Of renders a service result. Failure causes stay in the logs; only the
// message, the kind and the validation details reach the client.
func Of[T any](r result.Result[T]) Resp {
	if r.IsSuccess() {
		out := OK(r.Data())
		if m := r.Message(); m != "" {
			out.Msg = m
		}
		return out
	}
	f, _ := r.Failure()
	out := Error(CodeOf(f.Kind), f.Message)
	out.Type = f.Kind
	if f.Kind == result.Validation {
		out.Details = f.Details
	}
	return out
}

// JSON writes r with HTTP 200.
func JSON(c *gin.Context, r Resp) {
	c.Set(KeyCode, r.Code)
	c.JSON(http.StatusOK, r)
}

// Abort writes r and stops the handler chain.
func Abort(c *gin.Context, r Resp) {
	c.Set(KeyCode, r.Code)
	c.AbortWithStatusJSON(http.StatusOK, r)
}

// CodeFrom is the envelope code written on c, or fallback when none was.
func CodeFrom(c *gin.Context, fallback int) int {
	if v, ok := c.Get(KeyCode); ok {
		if code, ok := v.(int); ok {
			return code
		}
	}
	return fallback
}
