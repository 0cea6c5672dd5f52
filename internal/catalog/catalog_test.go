package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/httpclient"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/logger"
)

var _ Lookup = (*Memory)(nil)
var _ Lookup = (*Client)(nil)

func TestMemory_Seeded(t *testing.T) {
	m := NewSeededMemory()

	p, err := m.GetProductByID(context.Background(), "dairy-001")
	require.NoError(t, err)
	assert.Equal(t, 28.0, p.Price)
	assert.Equal(t, "500ml", p.Unit)

	_, err = m.GetProductByID(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemory_PutAndList(t *testing.T) {
	m := NewMemory()
	m.Put(Product{ID: "b"})
	m.Put(Product{ID: "a"})

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hc := httpclient.New(httpclient.Config{Timeout: 2 * time.Second, MaxConnsPerHost: 4})
	cb := httpclient.NewCircuitBreakerClient(hc, httpclient.DefaultCircuitBreakerConfig("catalog-test"), logger.Discard())
	return NewClientWith(srv.URL+"/", cb, logger.Discard())
}

func TestClient_GetProductByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/dairy-001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"dairy-001","name":"Milk","price":28,"image_url":"/m.jpg","unit":"500ml"}}`))
	})

	p, err := c.GetProductByID(context.Background(), "dairy-001")
	require.NoError(t, err)
	assert.Equal(t, "Milk", p.Name)
	assert.Equal(t, 28.0, p.Price)
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"product not found"}}`))
	})

	_, err := c.GetProductByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_EmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	})

	_, err := c.GetProductByID(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty data")
}

func TestClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetProductByID(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	assert.Contains(t, err.Error(), "get product x")
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))
}
