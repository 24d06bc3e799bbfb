package stripeclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"card-tokenizer/internal/logger"
	"card-tokenizer/internal/models"
	"card-tokenizer/internal/stripeerr"
)

const (
	tokenEndpoint = "/tokens"

	secretKeyPrefix = "sk_"
)

// ValidateKey checks that a publishable key is usable before any network
// call: it must be non-empty and must not be a secret key. Secret keys must
// never leave the server side, so a key starting with sk_ is rejected
// locally without any I/O.
func ValidateKey(publishableKey string) error {
	if strings.TrimSpace(publishableKey) == "" {
		e := stripeerr.ErrUnauthorized
		e.DevMessage = "Invalid Publishable Key: You must use a valid publishable key to create a token. For more info, see https://stripe.com/docs/stripe.js."
		return e
	}
	if strings.HasPrefix(publishableKey, secretKeyPrefix) {
		e := stripeerr.ErrUnauthorized
		e.DevMessage = "Invalid Publishable Key: You are using a secret key to create a token, instead of the publishable one. For more info, see https://stripe.com/docs/stripe.js."
		return e
	}
	return nil
}

// Client exchanges card data for tokens. Requests share no mutable state, so
// a single Client may be used from any number of goroutines.
type Client struct {
	backend        Backend
	publishableKey string
	log            *logger.Logger
}

// NewClient validates the publishable key and returns a Client over the
// given backend. A nil backend targets the live API.
func NewClient(publishableKey string, backend Backend, log *logger.Logger) (*Client, error) {
	if err := ValidateKey(publishableKey); err != nil {
		return nil, err
	}
	if backend == nil {
		backend = NewHTTPBackend("")
	}
	return &Client{
		backend:        backend,
		publishableKey: publishableKey,
		log:            log,
	}, nil
}

// CreateToken validates the card locally, then exchanges it for a token.
// Validation and key failures are reported without any network call; return
// errors are always stripeerr.Error values. Failed exchanges are never
// retried here; retry policy belongs to the caller.
func (c *Client) CreateToken(ctx context.Context, card models.Card, opts *RequestOptions) (*models.Token, error) {
	if err := ValidateKey(c.publishableKey); err != nil {
		return nil, err
	}

	if result := card.Validate(); !result.Valid {
		c.logf("VALIDATE", card.Last4, "local validation failed: %v", result.Errors[0])
		return nil, result.Errors[0]
	}

	c.logf("CREATE", card.Last4, "creating token")
	status, body, err := c.backend.Call(ctx, http.MethodPost, tokenEndpoint, c.publishableKey, card.FormValues(), opts)
	if err != nil {
		c.logf("CREATE", card.Last4, "transport failure: %v", err)
		return nil, stripeerr.FromErr(err)
	}

	return c.handleResponse(status, body)
}

// RequestToken looks up an existing token by id.
func (c *Client) RequestToken(ctx context.Context, tokenID string, opts *RequestOptions) (*models.Token, error) {
	if err := ValidateKey(c.publishableKey); err != nil {
		return nil, err
	}
	if strings.TrimSpace(tokenID) == "" {
		e := stripeerr.ErrUnknown
		e.Kind = stripeerr.InvalidRequest
		e.MessageKey = stripeerr.MessageKeyInvalidRequest
		e.DevMessage = "Required Parameter: 'tokenID' is required to retrieve a token."
		return nil, e
	}

	c.logf("REQUEST", tokenID, "retrieving token")
	path := tokenEndpoint + "/" + url.PathEscape(tokenID)
	status, body, err := c.backend.Call(ctx, http.MethodGet, path, c.publishableKey, nil, opts)
	if err != nil {
		c.logf("REQUEST", tokenID, "transport failure: %v", err)
		return nil, stripeerr.FromErr(err)
	}

	return c.handleResponse(status, body)
}

// CreateTokenAsync runs CreateToken on its own goroutine and delivers the
// outcome through exactly one of the two callbacks, exactly once. The
// callbacks run on that goroutine, never the caller's.
func (c *Client) CreateTokenAsync(ctx context.Context, card models.Card, opts *RequestOptions, onSuccess func(*models.Token), onError func(stripeerr.Error)) {
	go func() {
		token, err := c.CreateToken(ctx, card, opts)
		deliver(token, err, onSuccess, onError)
	}()
}

// RequestTokenAsync is the callback form of RequestToken.
func (c *Client) RequestTokenAsync(ctx context.Context, tokenID string, opts *RequestOptions, onSuccess func(*models.Token), onError func(stripeerr.Error)) {
	go func() {
		token, err := c.RequestToken(ctx, tokenID, opts)
		deliver(token, err, onSuccess, onError)
	}()
}

func deliver(token *models.Token, err error, onSuccess func(*models.Token), onError func(stripeerr.Error)) {
	if err != nil {
		if onError != nil {
			if stripeErr, ok := err.(stripeerr.Error); ok {
				onError(stripeErr)
			} else {
				onError(stripeerr.FromErr(err))
			}
		}
		return
	}
	if onSuccess != nil {
		onSuccess(token)
	}
}

func (c *Client) handleResponse(status int, body []byte) (*models.Token, error) {
	if status == http.StatusOK {
		token, err := models.TokenFromJSON(body)
		if err != nil {
			c.logf("PARSE", "", "could not parse token response: %v", err)
			return nil, stripeerr.FromErr(err)
		}
		c.logf("OK", token.ID, "token created")
		return token, nil
	}

	apiErr := stripeerr.FromResponse(status, body)
	c.logf("ERROR", "", "server reported %d: %s", status, apiErr.DevMessage)
	return nil, apiErr
}

func (c *Client) logf(action, id, format string, args ...interface{}) {
	if c.log != nil {
		c.log.LogToken(action, id, fmt.Sprintf(format, args...))
	}
}
