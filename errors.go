package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// User-facing failure messages.
const (
	// MessageGeneral is the fallback when nothing more specific is known,
	// including HTTP errors whose body carries no message.
	MessageGeneral = "Something went wrong"

	// MessageNetwork is used when the server could not be reached at all.
	MessageNetwork = "Network error"

	// MessageUnableToSendRequest is used when the request never left the
	// process or never completed: encoding errors, timeouts, cancellation and
	// missing access tokens.
	MessageUnableToSendRequest = "Unable to send request"

	// MessageInvalidCredentials is returned by [Client.Login] for HTTP 400.
	MessageInvalidCredentials = "email or password is incorrect"
)

var (
	// ErrMissingAccessToken is reported when a request requires auth but no
	// usable access token could be resolved. Such requests are never sent.
	ErrMissingAccessToken = errors.New("missing access token")

	// ErrNilClient is reported when a method is called on a nil *Client.
	ErrNilClient = errors.New("api client is nil")

	// ErrNotConnected is reported for requests made before [Client.Connect].
	ErrNotConnected = errors.New("client not connected - call Connect() first")
)

// ErrorKind tells callers which class of failure a [Failure] belongs to.
type ErrorKind int

const (
	// KindNone is the kind of a successful result.
	KindNone ErrorKind = iota
	// KindUnknown means the failure could not be attributed to anything
	// recognisable. Such failures carry no cause.
	KindUnknown
	// KindNetworkUnreachable means DNS, connection or routing failed; code 0.
	KindNetworkUnreachable
	// KindHTTP means the server answered with an error status, used as code.
	KindHTTP
	// KindRequestNotSent means the request did not complete before a
	// response arrived; code -1.
	KindRequestNotSent
	// KindMissingAccessToken means the request required auth but no
	// non-blank token was available, so it was never sent; code -1.
	KindMissingAccessToken
	// KindInvalidResponse means the server answered with a success status
	// but the body could not be decoded. The code is that status.
	KindInvalidResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnknown:
		return "unknown"
	case KindNetworkUnreachable:
		return "network unreachable"
	case KindHTTP:
		return "http error"
	case KindRequestNotSent:
		return "request not sent"
	case KindMissingAccessToken:
		return "missing access token"
	case KindInvalidResponse:
		return "invalid response"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrorHandler maps an error raised while performing a request to a failure.
// Endpoints supply one to replace [Classify] with their own messages.
type ErrorHandler func(err error) Failure

// TransportError is returned by a [Transport] when a request fails. Response
// is nil when the request never reached the server; a response with status 0
// means the network was unreachable.
type TransportError struct {
	Method   Method
	Path     string
	Response *Response
	Err      error
}

func (e *TransportError) Error() string {
	switch {
	case e.Response != nil && e.Response.Status != 0:
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Response.Status, errorBodySummary(e.Response.Body))
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: request failed", e.Method, e.Path)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusCode returns the response status, or -1 if there was no response.
func (e *TransportError) StatusCode() int {
	if e.Response == nil {
		return -1
	}

	return e.Response.Status
}

// DecodeError is reported when a successful response body cannot be decoded.
type DecodeError struct {
	Method Method
	Path   string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s %s response (status %d): %v", e.Method, e.Path, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// unknownError holds a value that was raised but is not an error.
type unknownError struct {
	value any
}

func (e *unknownError) Error() string {
	return fmt.Sprintf("unknown failure: %v", e.value)
}

type errorShape int

const (
	shapeUnknown errorShape = iota
	shapeTransportWithResponse
	shapeTransportWithoutResponse
	shapeMissingAccessToken
	shapeInvalidResponse
	shapeGeneric
)

func shapeOf(err error) (errorShape, *TransportError) {
	if err == nil {
		return shapeUnknown, nil
	}

	var unknown *unknownError
	if errors.As(err, &unknown) {
		return shapeUnknown, nil
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return shapeInvalidResponse, nil
	}

	var te *TransportError
	if errors.As(err, &te) {
		if te.Response != nil {
			return shapeTransportWithResponse, te
		}

		return shapeTransportWithoutResponse, te
	}

	if errors.Is(err, ErrMissingAccessToken) {
		return shapeMissingAccessToken, nil
	}

	return shapeGeneric, nil
}

// Classify turns any error raised while performing a request into a failure
// with a stable, non-empty message.
func Classify(err error) Failure {
	shape, te := shapeOf(err)

	switch shape {
	case shapeTransportWithResponse:
		status := te.Response.Status
		if status == 0 {
			return NewFailure(WithMessage(MessageNetwork), WithCode(0), WithKind(KindNetworkUnreachable), WithCause(err))
		}

		return NewFailure(
			WithMessage(errorBodyField(te.Response.Body, "message")),
			WithCode(status),
			WithKind(KindHTTP),
			WithCause(err),
		)
	case shapeTransportWithoutResponse, shapeGeneric:
		return NewFailure(WithMessage(MessageUnableToSendRequest), WithKind(KindRequestNotSent), WithCause(err))
	case shapeMissingAccessToken:
		return NewFailure(WithMessage(MessageUnableToSendRequest), WithKind(KindMissingAccessToken), WithCause(err))
	case shapeInvalidResponse:
		var decodeErr *DecodeError
		errors.As(err, &decodeErr)

		return NewFailure(WithCode(decodeErr.Status), WithKind(KindInvalidResponse), WithCause(err))
	case shapeUnknown:
		return NewFailure(WithMessage(MessageUnableToSendRequest), WithKind(KindUnknown))
	default:
		panic(fmt.Sprintf("client: unhandled error shape %d", shape))
	}
}

// errorBodyField returns the string value of field in a JSON object body, or
// "" if the body is not such an object.
func errorBodyField(body []byte, field string) string {
	if len(body) == 0 {
		return ""
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if s, ok := payload[field].(string); ok {
		return strings.TrimSpace(s)
	}

	return ""
}

func errorBodySummary(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "(empty error body)"
	}

	if msg := errorBodyField(body, "message"); msg != "" {
		return msg
	}

	if msg := errorBodyField(body, "error"); msg != "" {
		return msg
	}

	return text
}
