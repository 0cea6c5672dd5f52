package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/storage/memory"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/logger"
)

// --- Mock Storage ---

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorage) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- Recording publisher ---

type recordingPublisher struct {
	mu      sync.Mutex
	changes []domain.Change
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, c domain.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, c)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.changes)
}

var errStorageDown = errors.New("storage down")

func testOptions(st *memory.Storage, pub *recordingPublisher) Options {
	return Options{
		ShopperID: "s1",
		Origin:    "inst-test",
		Storage:   st,
		Publisher: pub,
		Logger:    logger.Discard(),
	}
}

func newHydratedCart(t *testing.T, st *memory.Storage, pub *recordingPublisher) *CartStore {
	t.Helper()
	cart := NewCart(testOptions(st, pub))
	require.NoError(t, cart.Hydrate(context.Background()))
	return cart
}

func newHydratedWishlist(t *testing.T, st *memory.Storage, pub *recordingPublisher) *WishlistStore {
	t.Helper()
	w := NewWishlist(testOptions(st, pub))
	require.NoError(t, w.Hydrate(context.Background()))
	return w
}

func stored(t *testing.T, st *memory.Storage, key string) string {
	t.Helper()
	raw, err := st.Get(context.Background(), key)
	require.NoError(t, err)
	return string(raw)
}
