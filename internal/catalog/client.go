package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/httpclient"
)

// Client fetches products from a remote product service.
type Client struct {
	baseURL string
	http    *httpclient.CircuitBreakerClient
	logger  *slog.Logger
}

// NewClient creates a catalog client for baseURL guarded by a circuit breaker.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	hc := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(hc, httpclient.DefaultCircuitBreakerConfig("catalog"), logger)
	return NewClientWith(baseURL, cb, logger)
}

// NewClientWith creates a catalog client over an existing breaker client.
func NewClientWith(baseURL string, cb *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    cb,
		logger:  logger,
	}
}

type productEnvelope struct {
	Data *Product `json:"data"`
}

// GetProductByID implements Lookup via GET {base}/api/v1/products/{id}.
func (c *Client) GetProductByID(ctx context.Context, id string) (*Product, error) {
	endpoint := c.baseURL + "/api/v1/products/" + url.PathEscape(id)

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog lookup failed",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		if httpclient.IsUnavailable(err) {
			return nil, apperrors.Unavailable("catalog unavailable", fmt.Errorf("get product %s: %w", id, err))
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}
	defer func() { _ = resp.Body.Close() }()

	var env productEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("decode product %s: empty data", id)
	}
	return env.Data, nil
}
