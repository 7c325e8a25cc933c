package client

import (
	"strings"
	"sync/atomic"
)

// TokenProvider supplies the access token of the current session. An empty
// or blank token means there is no authenticated session.
type TokenProvider interface {
	CurrentAccessToken() string
}

// TokenProviderFunc adapts a function to [TokenProvider].
type TokenProviderFunc func() string

func (f TokenProviderFunc) CurrentAccessToken() string { return f() }

// Session holds the access token of the signed-in user. It is written by the
// login and logout flow and read by [Client] for every request that requires
// auth. A Session is safe for concurrent use; readers get a snapshot, so a
// token change never affects requests already sent.
type Session struct {
	token atomic.Pointer[string]
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SetAccessToken(token string) {
	s.token.Store(&token)
}

func (s *Session) Clear() {
	s.token.Store(nil)
}

func (s *Session) CurrentAccessToken() string {
	if t := s.token.Load(); t != nil {
		return *t
	}

	return ""
}

// resolveToken returns explicit when it is usable, otherwise the provider's
// current token. The result is "" when neither yields a non-blank token.
func resolveToken(explicit string, provider TokenProvider) string {
	if !isBlank(explicit) {
		return explicit
	}

	if provider == nil {
		return ""
	}

	if token := provider.CurrentAccessToken(); !isBlank(token) {
		return token
	}

	return ""
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
