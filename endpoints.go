package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const idPlaceholder = "{id}"

// Endpoints holds the API paths used by the typed endpoint methods. Client
// and MerchantID must contain the {id} placeholder.
type Endpoints struct {
	Login              string `mapstructure:"login"`
	IssuanceHistory    string `mapstructure:"issuance_history"`
	Client             string `mapstructure:"client"`
	MerchantID         string `mapstructure:"merchant_id"`
	TransactionHistory string `mapstructure:"transaction_history"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:              "/auth/login",
		IssuanceHistory:    "/issuance-history/lookup",
		Client:             "/clients/{id}",
		MerchantID:         "/users/{id}/merchants",
		TransactionHistory: "/transaction-history",
	}
}

func (e Endpoints) merge(other Endpoints) Endpoints {
	pick := func(a, b string) string {
		if strings.TrimSpace(b) != "" {
			return strings.TrimSpace(b)
		}
		return a
	}

	return Endpoints{
		Login:              pick(e.Login, other.Login),
		IssuanceHistory:    pick(e.IssuanceHistory, other.IssuanceHistory),
		Client:             pick(e.Client, other.Client),
		MerchantID:         pick(e.MerchantID, other.MerchantID),
		TransactionHistory: pick(e.TransactionHistory, other.TransactionHistory),
	}
}

func (e Endpoints) validate() error {
	switch {
	case e.Login == "", e.IssuanceHistory == "", e.Client == "", e.MerchantID == "", e.TransactionHistory == "":
		return errors.New("endpoint paths must not be empty")
	case !strings.Contains(e.Client, idPlaceholder):
		return errors.New("client endpoint must contain " + idPlaceholder)
	case !strings.Contains(e.MerchantID, idPlaceholder):
		return errors.New("merchant id endpoint must contain " + idPlaceholder)
	}

	return nil
}

func withID(path, id string) string {
	return strings.ReplaceAll(path, idPlaceholder, url.PathEscape(id))
}

func (c *Client) endpoints() Endpoints {
	if c == nil || c.options == nil {
		return DefaultEndpoints()
	}

	return c.options.endpoints
}

// Login exchanges credentials for an access token. The token is not stored;
// callers put it in their [Session].
func (c *Client) Login(ctx context.Context, email, password string) Result[LoginData] {
	res := Do[envelope[LoginData]](ctx, c, Request{
		Method:   MethodPost,
		Endpoint: c.endpoints().Login,
		Body:     LoginRequest{Email: email, Password: password},
	}, loginErrorHandler)

	return then(res, func(code int, body envelope[LoginData]) Result[LoginData] {
		return NewSuccess(code, body.Data)
	})
}

func loginErrorHandler(err error) Failure {
	var te *TransportError
	if errors.As(err, &te) && te.StatusCode() == http.StatusBadRequest {
		return NewFailure(
			WithMessage(MessageInvalidCredentials),
			WithCode(http.StatusBadRequest),
			WithKind(KindHTTP),
			WithCause(err),
		)
	}

	return Classify(err)
}

// GetIssuanceHistory looks up the issuance record of the NFC card cardID
// using the card's pin code.
func (c *Client) GetIssuanceHistory(ctx context.Context, pinCode, cardID string) Result[IssuanceHistory] {
	res := Do[envelope[*issuanceHistoryPayload]](ctx, c, Request{
		Method:       MethodPost,
		Endpoint:     c.endpoints().IssuanceHistory,
		Body:         IssuanceHistoryRequest{PinCode: pinCode, NFCCardID: cardID},
		RequiresAuth: true,
	}, issuanceHistoryErrorHandler)

	return then(res, func(code int, body envelope[*issuanceHistoryPayload]) Result[IssuanceHistory] {
		if body.Data == nil {
			return Fail[IssuanceHistory](NewFailure())
		}

		history := IssuanceHistory{Details: body.Data.Data}
		if cf := body.Data.ClientCodeAndFullName; cf != nil {
			history.ClientCode = cf.Code
			history.ClientName = cf.FullName
		}

		return NewSuccess(code, history)
	})
}

// issuanceHistoryErrorHandler prefers the "error" field the lookup endpoint
// puts in its error bodies.
func issuanceHistoryErrorHandler(err error) Failure {
	f := Classify(err)

	var te *TransportError
	if f.Kind() == KindHTTP && errors.As(err, &te) {
		return NewFailure(
			WithMessage(errorBodyField(te.Response.Body, "error")),
			WithCode(f.Code()),
			WithKind(KindHTTP),
			WithCause(err),
		)
	}

	return f
}

// GetClient returns the client with id clientID. The response may be the
// bare client object or one wrapped in a "data" envelope.
func (c *Client) GetClient(ctx context.Context, clientID string) Result[ClientInfo] {
	res := Do[clientPayload](ctx, c, Request{
		Method:       MethodGet,
		Endpoint:     withID(c.endpoints().Client, clientID),
		RequiresAuth: true,
	}, nil)

	return then(res, func(code int, body clientPayload) Result[ClientInfo] {
		return NewSuccess(code, body.ClientInfo)
	})
}

// GetMerchantID returns the id of the first merchant belonging to userID.
func (c *Client) GetMerchantID(ctx context.Context, userID string) Result[string] {
	res := Do[envelope[[]merchant]](ctx, c, Request{
		Method:       MethodGet,
		Endpoint:     withID(c.endpoints().MerchantID, userID),
		RequiresAuth: true,
	}, nil)

	return then(res, func(code int, body envelope[[]merchant]) Result[string] {
		if len(body.Data) == 0 {
			return Fail[string](NewFailure())
		}

		return NewSuccess(code, body.Data[0].ID)
	})
}

// CreateTransactionHistory records tx and returns the server's confirmation
// message.
func (c *Client) CreateTransactionHistory(ctx context.Context, tx Transaction) Result[string] {
	res := Do[envelope[any]](ctx, c, Request{
		Method:       MethodPost,
		Endpoint:     c.endpoints().TransactionHistory,
		Body:         tx,
		RequiresAuth: true,
	}, nil)

	return then(res, func(code int, body envelope[any]) Result[string] {
		return NewSuccess(code, body.Message)
	})
}
