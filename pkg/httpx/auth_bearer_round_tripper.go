package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrEmptyBearerToken = errors.New("empty bearer token")

type tokenSource interface {
	BearerToken() string
}

// StaticToken is a bearer token fixed at startup (API keys).
type StaticToken string

func (t StaticToken) BearerToken() string {
	return string(t)
}

// AuthBearerRoundTripper sets the Authorization header on every outgoing
// request. The original request is cloned, never mutated.
type AuthBearerRoundTripper struct {
	next        http.RoundTripper
	tokenSource tokenSource
}

func NewAuthBearerRoundTripper(
	next http.RoundTripper,
	tokenSource tokenSource,
) AuthBearerRoundTripper {
	return AuthBearerRoundTripper{
		next:        next,
		tokenSource: tokenSource,
	}
}

func (rt AuthBearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	token := rt.tokenSource.BearerToken()
	if token == "" {
		return nil, fmt.Errorf("tokenSource.BearerToken: %w", ErrEmptyBearerToken)
	}

	authorized := req.Clone(req.Context())
	authorized.Header.Set("Authorization", "Bearer "+token)

	resp, err := rt.next.RoundTrip(authorized)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
