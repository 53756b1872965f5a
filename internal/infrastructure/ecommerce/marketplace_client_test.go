package ecommerce

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestMarketplaceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *MarketplaceConfig
		wantErr error
		wantURL string
	}{
		{
			name:    "empty config gets defaults",
			config:  &MarketplaceConfig{},
			wantURL: DefaultMarketplaceBaseURL,
		},
		{
			name:    "trailing slash trimmed",
			config:  &MarketplaceConfig{BaseURL: "http://localhost:9000/api/"},
			wantURL: "http://localhost:9000/api",
		},
		{
			name:    "relative base URL rejected",
			config:  &MarketplaceConfig{BaseURL: "api.example.com"},
			wantErr: ErrMarketplaceConfigInvalidBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, tt.config.BaseURL)
			assert.Equal(t, DefaultTimeoutSeconds, tt.config.TimeoutSeconds)
			assert.Equal(t, DefaultPageSize, tt.config.PageSize)
			assert.Equal(t, DefaultUserAgentSuffix, tt.config.UserAgentSuffix)
		})
	}
}

func TestMarketplaceConfig_PageSizeCapped(t *testing.T) {
	cfg := &MarketplaceConfig{PageSize: 1000}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func testStore() *integration.Store {
	return &integration.Store{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Main Store",
		Credentials: integration.Credentials{
			SellerID:  "12345",
			APIKey:    "key",
			APISecret: "secret",
		},
		IsActive: true,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *MarketplaceClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewMarketplaceClient(NewMarketplaceConfig(server.URL))
	require.NoError(t, err)
	return client
}

func TestMarketplaceClient_ListOrders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/suppliers/12345/orders", r.URL.Path)
		assert.Equal(t, "Created", r.URL.Query().Get("status"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "200", r.URL.Query().Get("size"))

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
		assert.Equal(t, "12345 - SelfIntegration", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 1, "size": 200, "totalPages": 3, "totalElements": 401,
			"content": [{
				"shipmentPackageId": 987654321,
				"orderNumber": "ORD-1",
				"status": "Created",
				"orderDate": 1700000000000,
				"totalPrice": 149.90,
				"currencyCode": "TRY",
				"lines": [
					{"barcode": "BC-1", "productName": "Mug", "quantity": 2, "price": 74.95}
				]
			}]
		}`))
	})

	page, err := client.ListOrders(context.Background(), testStore(), integration.PageRequest{
		Status: "Created",
		Page:   1,
		Size:   200,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 401, page.TotalElements)
	assert.True(t, page.HasNext())
	require.Len(t, page.Content, 1)

	order := page.Content[0]
	assert.Equal(t, "987654321", order.ExternalID())
	assert.Equal(t, "ORD-1", order.OrderNumber)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("149.90")))
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "BC-1", order.Lines[0].Barcode)
	assert.Equal(t, 2, order.Lines[0].Quantity)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(order.Raw, &raw))
	assert.Equal(t, "ORD-1", raw["orderNumber"])
}

func TestMarketplaceClient_ListOrders_DefaultSizeAndNoStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("status"))
		assert.Equal(t, "200", r.URL.Query().Get("size"))
		_, _ = w.Write([]byte(`{"page":0,"size":200,"totalPages":1,"totalElements":0,"content":[]}`))
	})

	page, err := client.ListOrders(context.Background(), testStore(), integration.PageRequest{})
	require.NoError(t, err)
	assert.False(t, page.HasNext())
	assert.Empty(t, page.Content)
}

func TestMarketplaceClient_ListOrders_MalformedOrderKeepsPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"page": 0, "size": 200, "totalPages": 1, "totalElements": 3,
			"content": [
				{"shipmentPackageId": 1, "orderNumber": "ORD-1", "status": "Created", "cargoTrackingNumber": 7330000000},
				{"shipmentPackageId": 2, "orderNumber": "ORD-2", "status": "Created", "cargoTrackingNumber": "7330ABC"},
				{"shipmentPackageId": 3, "orderNumber": "ORD-3", "lines": [{"barcode": "BC-1", "quantity": "two"}]}
			]
		}`))
	})

	page, err := client.ListOrders(context.Background(), testStore(), integration.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Content, 3)

	assert.NoError(t, page.Content[0].DecodeErr)
	assert.Equal(t, "7330000000", page.Content[0].CargoTrackingNumber.String())
	assert.NoError(t, page.Content[1].DecodeErr)
	assert.Equal(t, "7330ABC", page.Content[1].CargoTrackingNumber.String())

	broken := page.Content[2]
	assert.ErrorIs(t, broken.DecodeErr, integration.ErrPlatformInvalidResponse)
	assert.Equal(t, "3", broken.ExternalID())
	assert.Equal(t, "ORD-3", broken.OrderNumber)
	assert.NotEmpty(t, broken.Raw)
}

func TestMarketplaceClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: integration.ErrPlatformRequestFailed,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: integration.ErrPlatformRequestFailed,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
			wantErr: integration.ErrPlatformInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.ListOrders(context.Background(), testStore(), integration.PageRequest{})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, integration.IsPlatformError(err))
		})
	}
}

func TestMarketplaceClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewMarketplaceClient(NewMarketplaceConfig(baseURL))
	require.NoError(t, err)

	_, err = client.ListOrders(context.Background(), testStore(), integration.PageRequest{})
	assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
}

func TestMarketplaceClient_IncompleteCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Fail(t, "no request expected")
	})
	store := testStore()
	store.Credentials.APISecret = ""

	_, err := client.ListOrders(context.Background(), store, integration.PageRequest{})
	assert.ErrorIs(t, err, integration.ErrStoreNotConfigured)
}

func TestMarketplaceClient_ProxyClientCached(t *testing.T) {
	client, err := NewMarketplaceClient(NewMarketplaceConfig(""))
	require.NoError(t, err)

	store := testStore()
	store.ProxyURL = "http://proxy.internal:3128"

	first, err := client.clientFor(store)
	require.NoError(t, err)
	second, err := client.clientFor(store)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NotSame(t, client.httpClient, first)
	assert.Equal(t, client.config.timeout(), first.Timeout)

	transport, ok := first.Transport.(*http.Transport)
	require.True(t, ok)
	req := httptest.NewRequest(http.MethodGet, "https://api.example.com", nil)
	proxy, err := transport.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy.internal:3128", proxy.Host)
}

func TestMarketplaceClient_InvalidProxy(t *testing.T) {
	client, err := NewMarketplaceClient(NewMarketplaceConfig(""))
	require.NoError(t, err)

	store := testStore()
	store.ProxyURL = "not a url"

	_, err = client.clientFor(store)
	assert.ErrorIs(t, err, integration.ErrStoreNotConfigured)
}

func TestMarketplaceClient_NoProxyUsesDefaultClient(t *testing.T) {
	client, err := NewMarketplaceClient(NewMarketplaceConfig(""))
	require.NoError(t, err)

	got, err := client.clientFor(testStore())
	require.NoError(t, err)
	assert.Same(t, client.httpClient, got)
}

func TestMarketplaceClient_ListClaims(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers/12345/claims", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"page":2,"totalPages":3,"content":[{"id":"c-1","orderNumber":"ORD-9"}]}`))
	})

	page, err := client.ListClaims(context.Background(), testStore(), 2)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "c-1", page.Content[0].ID)
	assert.Equal(t, "ORD-9", page.Content[0].OrderNumber)
}

func TestMarketplaceClient_ListQuestions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers/12345/questions/filter", r.URL.Path)
		_, _ = w.Write([]byte(`{"page":0,"totalPages":1,"content":[{"id":42,"text":"Is it blue?","status":"WAITING_FOR_ANSWER"}]}`))
	})

	page, err := client.ListQuestions(context.Background(), testStore(), 0)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(42), page.Content[0].ID)
	assert.Equal(t, "Is it blue?", page.Content[0].Text)
}

func TestMarketplaceClient_AnswerQuestion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/suppliers/12345/questions/42/answers", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"Yes, it is blue."}`, string(body))
		w.WriteHeader(http.StatusOK)
	})

	err := client.AnswerQuestion(context.Background(), testStore(), 42, "Yes, it is blue.")
	assert.NoError(t, err)
}
