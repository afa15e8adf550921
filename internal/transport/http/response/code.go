package response

import "github.com/gblsmlo/lemind/internal/core/result"

// Business codes follow HTTP semantics.
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeTooManyRequests = 429
	CodeServerError     = 500
	CodeTimeout         = 504
)

var CodeMsgMap = map[int]string{
	CodeOK:              "OK",
	CodeBadRequest:      "Bad Request",
	CodeUnauthorized:    "Unauthorized",
	CodeForbidden:       "Forbidden",
	CodeNotFound:        "Not Found",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "Internal Server Error",
	CodeTimeout:         "Gateway Timeout",
}

// CodeOf maps a failure kind onto a business code.
func CodeOf(k result.Kind) int {
	switch k {
	case "":
		return CodeOK
	case result.Validation:
		return CodeBadRequest
	case result.Authorization:
		return CodeUnauthorized
	case result.NotFound:
		return CodeNotFound
	default:
		return CodeServerError
	}
}
