package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_analyzer/pkg/httpx"
)

func TestAuthBearerRoundTripper(t *testing.T) {
	rq := require.New(t)

	var gotAuthorization string

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer httpServer.Close()

	client := &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, httpx.StaticToken("secret-key")),
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, httpServer.URL, http.NoBody)
	rq.NoError(err)

	resp, err := client.Do(req)
	rq.NoError(err)

	defer resp.Body.Close()

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("Bearer secret-key", gotAuthorization)
	rq.Empty(req.Header.Get("Authorization"))
}

func TestAuthBearerRoundTripperEmptyToken(t *testing.T) {
	rq := require.New(t)

	client := &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, httpx.StaticToken("")),
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://127.0.0.1:1", http.NoBody)
	rq.NoError(err)

	_, err = client.Do(req) //nolint:bodyclose
	rq.ErrorIs(err, httpx.ErrEmptyBearerToken)
}
