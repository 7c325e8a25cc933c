package client

import "fmt"

// Result is the outcome of a single API call. It is either a success carrying
// data of type D or a failure carrying a user-facing message; exactly one of
// [Result.Success] and [Result.Failure] reports true.
//
// Results are built with [NewSuccess] and [Fail]. The zero value is a failure
// with the generic message.
type Result[D any] struct {
	ok      bool
	code    int
	data    D
	failure Failure
}

// NewSuccess returns a successful result. A non-positive code defaults to 200.
func NewSuccess[D any](code int, data D) Result[D] {
	if code <= 0 {
		code = 200
	}

	return Result[D]{ok: true, code: code, data: data}
}

// Fail returns a failed result carrying f.
func Fail[D any](f Failure) Result[D] {
	return Result[D]{failure: f}
}

// Success reports whether the call succeeded.
func (r Result[D]) Success() bool { return r.ok }

// Failure reports whether the call failed. It is always !r.Success().
func (r Result[D]) Failure() bool { return !r.ok }

// Code returns the HTTP status of a success, or the failure code (-1 when the
// request was never sent, 0 when the network was unreachable).
func (r Result[D]) Code() int {
	if r.ok {
		return r.code
	}

	return r.failure.Code()
}

// Data returns the payload of a successful result, or the zero D on failure.
func (r Result[D]) Data() D {
	return r.data
}

// Message returns the user-facing failure message, or "" on success.
func (r Result[D]) Message() string {
	if r.ok {
		return ""
	}

	return r.failure.Message()
}

// Kind returns the class of a failure, or [KindNone] on success.
func (r Result[D]) Kind() ErrorKind {
	if r.ok {
		return KindNone
	}

	return r.failure.Kind()
}

// Cause returns the underlying error of a failure, if any. It is meant for
// logging and is never shown to the user.
func (r Result[D]) Cause() error {
	if r.ok {
		return nil
	}

	return r.failure.Cause()
}

// Err returns the failure as an error, or nil on success.
func (r Result[D]) Err() error {
	if r.ok {
		return nil
	}

	return r.failure
}

// then runs fn on the data of a successful result and passes failures through.
func then[D, R any](r Result[D], fn func(code int, data D) Result[R]) Result[R] {
	if !r.ok {
		return Fail[R](r.failure)
	}

	return fn(r.code, r.data)
}

// Failure describes why an API call did not succeed.
type Failure struct {
	message string
	code    int
	kind    ErrorKind
	cause   error
	set     bool
}

// FailureOption overrides one field of a failure built by [NewFailure].
type FailureOption func(*Failure)

// NewFailure returns a failure with the generic message and code -1 unless
// overridden by opts.
func NewFailure(opts ...FailureOption) Failure {
	f := Failure{
		message: MessageGeneral,
		code:    -1,
		kind:    KindUnknown,
		set:     true,
	}

	for _, opt := range opts {
		opt(&f)
	}

	return f
}

// WithMessage sets the user-facing message. An empty message is ignored.
func WithMessage(message string) FailureOption {
	return func(f *Failure) {
		if message != "" {
			f.message = message
		}
	}
}

// WithCode sets the failure code: an HTTP status, 0 or -1.
func WithCode(code int) FailureOption {
	return func(f *Failure) {
		f.code = code
	}
}

// WithCause records the error the failure was derived from.
func WithCause(err error) FailureOption {
	return func(f *Failure) {
		f.cause = err
	}
}

// WithKind sets the failure class.
func WithKind(kind ErrorKind) FailureOption {
	return func(f *Failure) {
		f.kind = kind
	}
}

func (f Failure) Message() string {
	if f.message == "" {
		return MessageGeneral
	}

	return f.message
}

func (f Failure) Code() int {
	if !f.set {
		return -1
	}

	return f.code
}

func (f Failure) Kind() ErrorKind {
	if !f.set {
		return KindUnknown
	}

	return f.kind
}

func (f Failure) Cause() error { return f.cause }

func (f Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s (code %d): %v", f.Message(), f.Code(), f.cause)
	}

	return fmt.Sprintf("%s (code %d)", f.Message(), f.Code())
}

func (f Failure) Unwrap() error { return f.cause }
