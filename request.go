package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
)

// Request describes a single API call. It is created per call and never
// reused.
type Request struct {
	Method   Method
	Endpoint string

	// Body is encoded as JSON. It is only sent when it encodes to something
	// other than null, {} or [].
	Body any

	Query  url.Values
	Header http.Header

	// RequiresAuth makes the request carry a bearer token. AccessToken, when
	// non-blank, is used instead of the session token.
	RequiresAuth bool
	AccessToken  string
}

// HTTPRequest is the transport-level form of a [Request], with its body
// encoded and its headers final.
type HTTPRequest struct {
	Method Method
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// mustBeSupported panics for methods other than GET, POST, PUT, PATCH and
// DELETE. Sending anything else is a programming error.
func (m Method) mustBeSupported() {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
	default:
		panic(fmt.Sprintf("client: unsupported request method %q", string(m)))
	}
}

// buildRequest turns req into the request handed to the transport. token is
// the already resolved access token; it is ignored unless req.RequiresAuth.
func buildRequest(req Request, token string) (*HTTPRequest, error) {
	req.Method.mustBeSupported()

	out := &HTTPRequest{
		Method: req.Method,
		Path:   req.Endpoint,
		Header: canonicalHeader(req.Header),
	}

	if len(req.Query) > 0 {
		out.Query = cloneValues(req.Query)
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %s request body: %w", req.Method, req.Endpoint, err)
	}

	out.Body = body

	if req.RequiresAuth {
		if isBlank(token) {
			return nil, fmt.Errorf("%s %s: %w", req.Method, req.Endpoint, ErrMissingAccessToken)
		}

		out.Header.Set(headerAuthorization, "Bearer "+token)
	}

	return out, nil
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	switch string(bytes.TrimSpace(data)) {
	case "null", "{}", "[]":
		return nil, nil
	}

	return data, nil
}

// canonicalHeader copies h with every key in canonical form, so a later Set
// replaces caller values regardless of how their keys were spelled.
func canonicalHeader(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, vals := range h {
		for _, v := range vals {
			out.Add(k, v)
		}
	}

	return out
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}

	return out
}
