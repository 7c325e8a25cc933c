package client

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Transport sends a prepared request. It returns a *[TransportError] for
// non-2xx responses and for requests that could not be completed.
type Transport interface {
	Send(ctx context.Context, req *HTTPRequest) (*Response, error)
}

// Response is a completed HTTP exchange.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

type restyTransport struct {
	client *resty.Client
}

func newRestyTransport(baseURL string, opts *Options) *restyTransport {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.timeout).
		SetLogger(opts.requestLogger).
		SetHeaders(opts.requestHeaders)

	return &restyTransport{client: c}
}

func (t *restyTransport) Send(ctx context.Context, req *HTTPRequest) (*Response, error) {
	r := t.client.R().SetContext(ctx)

	for k, vals := range req.Header {
		for _, v := range vals {
			r.Header.Add(k, v)
		}
	}

	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}

	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(string(req.Method), req.Path)
	if err != nil {
		te := &TransportError{Method: req.Method, Path: req.Path, Err: err}
		if isNetworkUnreachable(err) {
			te.Response = &Response{Status: 0}
		}

		return nil, te
	}

	out := &Response{
		Status: resp.StatusCode(),
		Header: resp.Header(),
		Body:   resp.Body(),
	}

	if resp.IsError() {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Response: out}
	}

	return out, nil
}

func (t *restyTransport) close() {
	t.client.GetClient().CloseIdleConnections()
}
