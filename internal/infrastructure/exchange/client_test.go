package exchange

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-planner-service/internal/config"
)

// fakeCache - кеш в памяти для тестов
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

func newTestClient(baseURL, apiKey string, cache *fakeCache) *client {
	cfg := &config.ExchangeConfig{
		BaseURL:        baseURL,
		APIKey:         apiKey,
		RequestTimeout: 5 * time.Second,
	}
	return NewClient(cfg, "MAD", cache, time.Hour, zap.NewNop()).(*client)
}

func TestClient_Convert(t *testing.T) {
	ctx := context.Background()

	t.Run("home currency passes through", func(t *testing.T) {
		c := newTestClient("http://unused", "", newFakeCache())
		assert.Equal(t, 250.0, c.Convert(ctx, 250, "MAD"))
		assert.Equal(t, 250.0, c.Convert(ctx, 250, ""))
	})

	t.Run("fallback rates without api key", func(t *testing.T) {
		c := newTestClient("http://unused", "", newFakeCache())
		assert.Equal(t, 500.0, c.Convert(ctx, 50, "USD"))
		assert.Equal(t, 110.0, c.Convert(ctx, 10, "EUR"))
	})

	t.Run("unknown currency converts 1 to 1", func(t *testing.T) {
		c := newTestClient("http://unused", "", newFakeCache())
		assert.Equal(t, 75.0, c.Convert(ctx, 75, "JPY"))
	})
}

func TestClient_Rates(t *testing.T) {
	ctx := context.Background()

	t.Run("live rates are inverted and cached", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"result": "success",
				"conversion_rates": map[string]float64{
					"MAD": 1.0,
					"USD": 0.1, // 1 MAD = 0.1 USD -> 1 USD = 10 MAD
				},
			})
		}))
		defer server.Close()

		cache := newFakeCache()
		c := newTestClient(server.URL, "test-key", cache)

		rates := c.Rates(ctx)
		require.Contains(t, rates, "USD")
		assert.InDelta(t, 10.0, rates["USD"], 1e-9)

		// Второй вызов обслуживается из кеша
		_ = c.Rates(ctx)
		assert.Equal(t, 1, calls)
	})

	t.Run("api failure degrades to fallback table", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := newTestClient(server.URL, "test-key", newFakeCache())

		rates := c.Rates(ctx)
		assert.Equal(t, 10.0, rates["USD"])
	})

	t.Run("error result degrades to fallback table", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"result": "error"})
		}))
		defer server.Close()

		c := newTestClient(server.URL, "test-key", newFakeCache())

		rates := c.Rates(ctx)
		assert.Equal(t, 11.0, rates["EUR"])
	})
}
