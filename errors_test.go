package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	generic := errors.New("marshal failed")
	transportNoResponse := &TransportError{Method: MethodGet, Path: "/x", Err: context.DeadlineExceeded}

	tests := []struct {
		name      string
		err       error
		message   string
		code      int
		kind      ErrorKind
		wantCause bool
	}{
		{
			name:      "network unreachable",
			err:       &TransportError{Method: MethodGet, Path: "/x", Response: &Response{Status: 0}, Err: errors.New("connection refused")},
			message:   MessageNetwork,
			code:      0,
			kind:      KindNetworkUnreachable,
			wantCause: true,
		},
		{
			name:      "http error with message",
			err:       &TransportError{Method: MethodPost, Path: "/x", Response: &Response{Status: 403, Body: []byte(`{"message": "card expired"}`)}},
			message:   "card expired",
			code:      403,
			kind:      KindHTTP,
			wantCause: true,
		},
		{
			name:      "http error without body",
			err:       &TransportError{Method: MethodPost, Path: "/x", Response: &Response{Status: 500}},
			message:   MessageGeneral,
			code:      500,
			kind:      KindHTTP,
			wantCause: true,
		},
		{
			name:      "http error with blank message",
			err:       &TransportError{Method: MethodPost, Path: "/x", Response: &Response{Status: 502, Body: []byte(`{"message": "  "}`)}},
			message:   MessageGeneral,
			code:      502,
			kind:      KindHTTP,
			wantCause: true,
		},
		{
			name:      "http error with non-string message",
			err:       &TransportError{Method: MethodPost, Path: "/x", Response: &Response{Status: 400, Body: []byte(`{"message": 12}`)}},
			message:   MessageGeneral,
			code:      400,
			kind:      KindHTTP,
			wantCause: true,
		},
		{
			name:      "wrapped http error",
			err:       fmt.Errorf("lookup: %w", &TransportError{Response: &Response{Status: http.StatusNotFound, Body: []byte(`{"message": "not found"}`)}}),
			message:   "not found",
			code:      404,
			kind:      KindHTTP,
			wantCause: true,
		},
		{
			name:      "transport error without response",
			err:       transportNoResponse,
			message:   MessageUnableToSendRequest,
			code:      -1,
			kind:      KindRequestNotSent,
			wantCause: true,
		},
		{
			name:      "missing access token",
			err:       fmt.Errorf("GET /x: %w", ErrMissingAccessToken),
			message:   MessageUnableToSendRequest,
			code:      -1,
			kind:      KindMissingAccessToken,
			wantCause: true,
		},
		{
			name:      "generic error",
			err:       generic,
			message:   MessageUnableToSendRequest,
			code:      -1,
			kind:      KindRequestNotSent,
			wantCause: true,
		},
		{
			name:      "undecodable success body",
			err:       &DecodeError{Method: MethodGet, Path: "/x", Status: 200, Err: errors.New("invalid character '<'")},
			message:   MessageGeneral,
			code:      200,
			kind:      KindInvalidResponse,
			wantCause: true,
		},
		{
			name:    "unknown value",
			err:     &unknownError{value: "boom"},
			message: MessageUnableToSendRequest,
			code:    -1,
			kind:    KindUnknown,
		},
		{
			name:    "nil error",
			err:     nil,
			message: MessageUnableToSendRequest,
			code:    -1,
			kind:    KindUnknown,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := Classify(tt.err)

			assert.Equal(t, tt.message, f.Message())
			assert.Equal(t, tt.code, f.Code())
			assert.Equal(t, tt.kind, f.Kind())

			if tt.wantCause {
				assert.Equal(t, tt.err, f.Cause())
			} else {
				assert.Nil(t, f.Cause())
			}
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *TransportError
		want string
	}{
		{
			name: "json error field",
			err:  &TransportError{Method: MethodPost, Path: "/a", Response: &Response{Status: 400, Body: []byte(`{"error": "pin code is invalid"}`)}},
			want: "POST /a: status 400: pin code is invalid",
		},
		{
			name: "plain text body",
			err:  &TransportError{Method: MethodGet, Path: "/a", Response: &Response{Status: 503, Body: []byte("Service Unavailable")}},
			want: "GET /a: status 503: Service Unavailable",
		},
		{
			name: "empty body",
			err:  &TransportError{Method: MethodGet, Path: "/a", Response: &Response{Status: 500}},
			want: "GET /a: status 500: (empty error body)",
		},
		{
			name: "underlying error",
			err:  &TransportError{Method: MethodGet, Path: "/a", Err: errors.New("connection refused")},
			want: "GET /a: connection refused",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestTransportError_StatusCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, (&TransportError{}).StatusCode())
	assert.Equal(t, 0, (&TransportError{Response: &Response{}}).StatusCode())
	assert.Equal(t, 418, (&TransportError{Response: &Response{Status: 418}}).StatusCode())
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "missing access token", KindMissingAccessToken.String())
	assert.Equal(t, "invalid response", KindInvalidResponse.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}
