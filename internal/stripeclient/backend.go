// Package stripeclient exchanges validated card data for single-use tokens
// against the Stripe HTTPS API. Transport is behind the Backend interface so
// tests and alternative clients can swap it out.
package stripeclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	apiURL     = "https://api.stripe.com/v1"
	apiVersion = "2015-07-13"

	clientVersion = "1.0.0"

	// Chosen to be consistent with Stripe's own client libraries.
	defaultHTTPTimeout = 80 * time.Second

	maxIdempotencyKeyLength = 255
)

var ErrIdempotencyKeyTooLong = errors.New("idempotency key longer than 255 characters")

// RequestOptions carries per-call settings. The idempotency key is passed
// through to the server unchanged; deduplication is entirely server-side.
type RequestOptions struct {
	IdempotencyKey string
}

// Backend sends one API request and reports the raw outcome: HTTP status and
// response body on any completed exchange, or an error when the transport
// itself failed.
type Backend interface {
	Call(ctx context.Context, method, path, key string, form url.Values, opts *RequestOptions) (int, []byte, error)
}

// HTTPBackend is the production Backend over net/http.
type HTTPBackend struct {
	URL    string
	Client *http.Client
}

// NewHTTPBackend returns a Backend against the live API with the default
// timeout. Pass a non-empty baseURL to target a different endpoint.
func NewHTTPBackend(baseURL string) *HTTPBackend {
	if baseURL == "" {
		baseURL = apiURL
	}
	return &HTTPBackend{
		URL:    baseURL,
		Client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (b *HTTPBackend) Call(ctx context.Context, method, path, key string, form url.Values, opts *RequestOptions) (int, []byte, error) {
	var body io.Reader
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = b.URL + path

	if len(form) > 0 {
		data := form.Encode()
		if strings.ToUpper(method) == http.MethodGet {
			path += "?" + data
		} else {
			body = bytes.NewBufferString(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return 0, nil, err
	}

	req.SetBasicAuth(key, "")
	req.Header.Set("Stripe-Version", apiVersion)
	req.Header.Set("User-Agent", "CardTokenizer/"+clientVersion)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if opts != nil {
		if idempotency := strings.TrimSpace(opts.IdempotencyKey); idempotency != "" {
			if len(idempotency) > maxIdempotencyKeyLength {
				return 0, nil, ErrIdempotencyKeyTooLong
			}
			req.Header.Set("Idempotency-Key", idempotency)
		}
	}

	res, err := b.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, err
	}

	return res.StatusCode, resBody, nil
}
