package client

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// envelope is the wrapper the API puts around most payloads.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginData struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId,omitempty"`
	Email       string `json:"email,omitempty"`
	FullName    string `json:"fullName,omitempty"`
}

type IssuanceHistoryRequest struct {
	PinCode   string `json:"pinCode"`
	NFCCardID string `json:"nfcCardId"`
}

// IssuanceHistory is the issuance record of an NFC card together with the
// client it was issued to.
type IssuanceHistory struct {
	ClientCode string `json:"clientCode"`
	ClientName string `json:"clientName"`

	// Details holds the fields of the issuance record as returned by the API.
	Details map[string]any `json:"details,omitempty"`
}

type issuanceHistoryPayload struct {
	Data                  map[string]any `json:"data"`
	ClientCodeAndFullName *struct {
		Code     string `json:"Code"`
		FullName string `json:"FullName"`
	} `json:"clientCodeAndFullName"`
}

type ClientInfo struct {
	ID       string `json:"id"`
	Code     string `json:"code,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// clientPayload decodes a client either wrapped in the usual envelope or as
// the bare object the client lookup returns.
type clientPayload struct {
	ClientInfo
}

func (p *clientPayload) UnmarshalJSON(b []byte) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	if data := bytes.TrimSpace(env.Data); len(data) > 0 && data[0] == '{' {
		b = data
	}

	return json.Unmarshal(b, &p.ClientInfo)
}

type merchant struct {
	ID string `json:"id"`
}

type Transaction struct {
	MerchantID string          `json:"merchantId"`
	ClientID   string          `json:"clientId"`
	CardID     string          `json:"cardId,omitempty"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
}
