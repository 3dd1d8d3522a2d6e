package aiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"deal_analyzer/internal/domain"
	"deal_analyzer/internal/domain/entity"
	"deal_analyzer/pkg/errcodes"
	"deal_analyzer/pkg/httpx"
	"deal_analyzer/pkg/logx"
)

const (
	DefaultMode    = "query"
	DefaultTimeout = 2 * time.Minute

	errorBodyMaxLen = 512
)

var json = jsoniter.Config{ //nolint:gochecknoglobals // skip
	EscapeHTML: false,
	UseNumber:  true,
}.Froze()

type request struct {
	Mode    string `json:"mode"`
	User    string `json:"user"`
	Message string `json:"message"`
}

type Options struct {
	URL            string
	APIKey         string
	Mode           string
	User           string
	Timeout        time.Duration
	LogFieldMaxLen int
}

// Client sends deal batches to the summarization endpoint.
type Client struct {
	url        string
	mode       string
	user       string
	httpClient *http.Client
}

func New(opts Options) *Client {
	if opts.Mode == "" {
		opts.Mode = DefaultMode
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(opts.LogFieldMaxLen),
		),
		httpx.StaticToken(opts.APIKey),
	)

	return &Client{
		url:  opts.URL,
		mode: opts.Mode,
		user: opts.User,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
	}
}

// Summarize posts the deals embedded in a fixed prompt and returns the decoded
// response body. The body is not interpreted.
func (c *Client) Summarize(ctx context.Context, deals []entity.Deal) (any, error) {
	if deals == nil {
		deals = []entity.Deal{}
	}

	products, err := json.Marshal(deals)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal deals: %w", err)
	}

	body, err := json.Marshal(request{
		Mode:    c.mode,
		User:    c.user,
		Message: buildPrompt(products),
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, domain.WrapError(err, errcodes.AnalysisRequestError, "build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.AnalysisRequestError, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyMaxLen))

		return nil, domain.NewError(
			errcodes.AnalysisRequestError,
			"unexpected status "+strconv.Itoa(resp.StatusCode)+": "+string(snippet),
		)
	}

	var analysis any
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, domain.WrapError(err, errcodes.AnalysisRequestError, "decode response")
	}

	return analysis, nil
}
