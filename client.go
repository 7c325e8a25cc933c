package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Client performs requests against the merchant API. Create one with [New]
// and call [Client.Connect] before use.
type Client struct {
	baseURL   string
	options   *Options
	transport Transport
	resty     *restyTransport
	connected bool
	mu        sync.Mutex
}

// New returns a client for the API at baseURL. Options are validated by
// [Client.Connect].
func New(baseURL string, opts ...Option) *Client {
	options := newClientOptions()

	for _, o := range opts {
		o(options)
	}

	return &Client{
		baseURL: strings.TrimSpace(baseURL),
		options: options,
	}
}

// Connect validates the configuration and prepares the transport. Calling it
// again after a successful call is a no-op.
func (c *Client) Connect(_ context.Context) error {
	if c == nil {
		return ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	if err := c.options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if c.options.transport != nil {
		c.transport = c.options.transport
	} else {
		if c.baseURL == "" {
			return errors.New("base URL must be set")
		}

		c.resty = newRestyTransport(c.baseURL, c.options)
		c.transport = c.resty
	}

	c.connected = true

	return nil
}

// Close releases idle connections held by the default transport.
func (c *Client) Close() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resty != nil {
		c.resty.close()
	}
}

func (c *Client) currentTransport() (Transport, error) {
	if c == nil {
		return nil, ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil, ErrNotConnected
	}

	return c.transport, nil
}

func (c *Client) logger() RequestLogger {
	if c == nil || c.options == nil || c.options.requestLogger == nil {
		return &NoopLogger{}
	}

	return c.options.requestLogger
}

func (c *Client) tokenProvider() TokenProvider {
	if c == nil || c.options == nil {
		return nil
	}

	return c.options.tokenProvider
}

// Do performs req and decodes a successful JSON response into R. It never
// returns an error: anything that goes wrong is mapped to a failed result by
// onError, or by [Classify] when onError is nil.
//
// Do panics if req.Method is not one of the supported methods.
func Do[R any](ctx context.Context, c *Client, req Request, onError ErrorHandler) Result[R] {
	req.Method.mustBeSupported()

	log := c.logger()

	fail := func(err error) Result[R] {
		var f Failure
		if onError != nil {
			f = onError(err)
		} else {
			f = Classify(err)
		}

		log.Errorf("%s %s failed: %s (code %d, %s): %v", req.Method, req.Endpoint, f.Message(), f.Code(), f.Kind(), err)

		return Fail[R](f)
	}

	transport, err := c.currentTransport()
	if err != nil {
		return fail(err)
	}

	var token string
	if req.RequiresAuth {
		token = resolveToken(req.AccessToken, c.tokenProvider())
	}

	httpReq, err := buildRequest(req, token)
	if err != nil {
		return fail(err)
	}

	if httpReq.Header.Get(headerRequestID) == "" {
		httpReq.Header.Set(headerRequestID, uuid.NewString())
	}

	log.Debugf("%s %s request_id=%s", httpReq.Method, httpReq.Path, httpReq.Header.Get(headerRequestID))

	resp, err := send(ctx, transport, httpReq)
	if err != nil {
		return fail(err)
	}

	var out R
	if len(bytes.TrimSpace(resp.Body)) > 0 {
		if err := json.Unmarshal(resp.Body, &out); err != nil {
			return fail(&DecodeError{Method: httpReq.Method, Path: httpReq.Path, Status: resp.Status, Err: err})
		}
	}

	return NewSuccess(resp.Status, out)
}

// send calls the transport and turns a panic inside it into an error.
func send(ctx context.Context, transport Transport, req *HTTPRequest) (resp *Response, err error) {
	defer func() {
		if v := recover(); v != nil {
			if e, ok := v.(error); ok {
				err = fmt.Errorf("transport panicked: %w", e)
			} else {
				err = &unknownError{value: v}
			}

			resp = nil
		}
	}()

	resp, err = transport.Send(ctx, req)
	if err == nil && resp == nil {
		err = fmt.Errorf("%s %s: transport returned no response", req.Method, req.Path)
	}

	return resp, err
}
