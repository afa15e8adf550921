// Package result is the outcome vocabulary shared by every service operation.
//
// A Result is either a success carrying data or a failure carrying one Kind
// from a closed set. Services never return bare errors to their callers; the
// transport layer branches on IsSuccess/IsFailure instead.
package result

import "encoding/json"

// Kind classifies a failure. The set is closed.
type Kind string

const (
	NotFound      Kind = "NOT_FOUND_ERROR"
	Validation    Kind = "VALIDATION_ERROR"
	Database      Kind = "DATABASE_ERROR"
	Authorization Kind = "AUTHORIZATION_ERROR"
	Unknown       Kind = "UNKNOWN_ERROR"
)

// Kinds lists every failure kind.
func Kinds() []Kind {
	return []Kind{NotFound, Validation, Database, Authorization, Unknown}
}

// Failure describes why an operation did not succeed. Message is safe to show
// to users; Err and Details are diagnostic only.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
	Details any
}

func (f Failure) Error() string { return f.Message }

func (f Failure) Unwrap() error { return f.Err }

// Result is the outcome of one operation. The zero value is a failure of kind
// Unknown so an unset result can never be mistaken for a success.
type Result[T any] struct {
	ok      bool
	data    T
	message string
	failure Failure
}

// Success wraps data with an optional message.
func Success[T any](data T, message ...string) Result[T] {
	r := Result[T]{ok: true, data: data}
	if len(message) > 0 {
		r.message = message[0]
	}
	return r
}

// Fail builds a failed result.
func Fail[T any](f Failure) Result[T] {
	if f.Kind == "" {
		f.Kind = Unknown
	}
	return Result[T]{failure: f, message: f.Message}
}

// Forward re-types a failed result. It panics when r is a success, which is a
// programming error at the call site.
func Forward[U, T any](r Result[T]) Result[U] {
	if r.ok {
		panic("result: Forward called on a success")
	}
	return Fail[U](r.failure)
}

func (r Result[T]) IsSuccess() bool { return r.ok }

func (r Result[T]) IsFailure() bool { return !r.ok }

// Data returns the success payload, or the zero value for a failure.
func (r Result[T]) Data() T { return r.data }

// Message is the optional success message or the failure message.
func (r Result[T]) Message() string { return r.message }

// Kind is empty for a success.
func (r Result[T]) Kind() Kind {
	if r.ok {
		return ""
	}
	if r.failure.Kind == "" {
		return Unknown
	}
	return r.failure.Kind
}

// Failure returns the failure details; ok is false for a success.
func (r Result[T]) Failure() (Failure, bool) {
	if r.ok {
		return Failure{}, false
	}
	f := r.failure
	f.Kind = r.Kind()
	return f, true
}

type successJSON[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type failureJSON struct {
	Success bool   `json:"success"`
	Type    Kind   `json:"type"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(successJSON[T]{Success: true, Data: r.data, Message: r.message})
	}
	out := failureJSON{Type: r.Kind(), Message: r.failure.Message, Details: r.failure.Details}
	if r.failure.Err != nil {
		out.Error = r.failure.Err.Error()
	}
	return json.Marshal(out)
}
