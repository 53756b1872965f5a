package ecommerce

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the marketplace API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// MarketplaceClient implements integration.MarketplaceClient over the
// marketplace's REST seller API. Credentials and proxy come from the store
// on every call, so one client serves all stores.
type MarketplaceClient struct {
	config     *MarketplaceConfig
	httpClient *http.Client
	logger     *zap.Logger

	// proxyClients caches one http.Client per proxy URL
	proxyClients map[string]*http.Client
	mu           sync.Mutex
}

// ClientOption configures a MarketplaceClient
type ClientOption func(*MarketplaceClient)

// WithHTTPClient replaces the default (non-proxied) HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(m *MarketplaceClient) {
		m.httpClient = c
	}
}

// WithLogger sets the client's logger
func WithLogger(l *zap.Logger) ClientOption {
	return func(m *MarketplaceClient) {
		m.logger = l
	}
}

// NewMarketplaceClient creates a client with the given configuration
func NewMarketplaceClient(config *MarketplaceConfig, opts ...ClientOption) (*MarketplaceClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c := &MarketplaceClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.timeout(),
		},
		logger:       zap.NewNop(),
		proxyClients: make(map[string]*http.Client),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ integration.MarketplaceClient = (*MarketplaceClient)(nil)

func (c *MarketplaceConfig) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

// orderPageResponse keeps each order's raw JSON so it can be stored verbatim
type orderPageResponse struct {
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int               `json:"totalElements"`
	Content       []json.RawMessage `json:"content"`
}

// ListOrders fetches one page of shipment packages. Pages are 0-based.
func (c *MarketplaceClient) ListOrders(ctx context.Context, store *integration.Store, req integration.PageRequest) (*integration.OrderPage, error) {
	size := req.Size
	if size <= 0 || size > c.config.PageSize {
		size = c.config.PageSize
	}
	query := url.Values{}
	if req.Status != "" {
		query.Set("status", req.Status)
	}
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("size", strconv.Itoa(size))

	body, err := c.doRequest(ctx, store, http.MethodGet, "/orders", query, nil)
	if err != nil {
		return nil, err
	}

	var resp orderPageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}

	page := &integration.OrderPage{
		Page:          resp.Page,
		Size:          resp.Size,
		TotalPages:    resp.TotalPages,
		TotalElements: resp.TotalElements,
		Content:       make([]integration.RemoteOrder, 0, len(resp.Content)),
	}
	for _, raw := range resp.Content {
		page.Content = append(page.Content, decodeOrder(raw))
	}

	c.logger.Debug("Fetched order page",
		zap.String("store_id", store.ID.String()),
		zap.Int("page", page.Page),
		zap.Int("total_pages", page.TotalPages),
		zap.Int("count", len(page.Content)),
	)
	return page, nil
}

// decodeOrder never fails the page. A malformed element comes back with
// DecodeErr set and whatever key fields could still be read.
func decodeOrder(raw json.RawMessage) integration.RemoteOrder {
	var order integration.RemoteOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		var keys struct {
			ShipmentPackageID integration.RemoteID `json:"shipmentPackageId"`
			OrderNumber       string               `json:"orderNumber"`
		}
		_ = json.Unmarshal(raw, &keys)
		order = integration.RemoteOrder{
			ShipmentPackageID: keys.ShipmentPackageID,
			OrderNumber:       keys.OrderNumber,
			DecodeErr:         fmt.Errorf("%w: order: %v", integration.ErrPlatformInvalidResponse, err),
		}
	}
	order.Raw = append(json.RawMessage(nil), raw...)
	return order
}

// ---------------------------------------------------------------------------
// Claims and questions
// ---------------------------------------------------------------------------

// ListClaims fetches one page of return claims
func (c *MarketplaceClient) ListClaims(ctx context.Context, store *integration.Store, page int) (*integration.ClaimPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(c.config.PageSize))

	body, err := c.doRequest(ctx, store, http.MethodGet, "/claims", query, nil)
	if err != nil {
		return nil, err
	}
	var result integration.ClaimPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}
	return &result, nil
}

// ListQuestions fetches one page of customer questions
func (c *MarketplaceClient) ListQuestions(ctx context.Context, store *integration.Store, page int) (*integration.QuestionPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(c.config.PageSize))

	body, err := c.doRequest(ctx, store, http.MethodGet, "/questions/filter", query, nil)
	if err != nil {
		return nil, err
	}
	var result integration.QuestionPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}
	return &result, nil
}

// AnswerQuestion posts the answer text for a question
func (c *MarketplaceClient) AnswerQuestion(ctx context.Context, store *integration.Store, questionID int64, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("marketplace: failed to encode answer: %w", err)
	}
	path := "/questions/" + strconv.FormatInt(questionID, 10) + "/answers"
	_, err = c.doRequest(ctx, store, http.MethodPost, path, nil, payload)
	return err
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// doRequest performs an authenticated call against the store's supplier
// resource and returns the (size-capped) body of a successful response
func (c *MarketplaceClient) doRequest(ctx context.Context, store *integration.Store, method, path string, query url.Values, payload []byte) ([]byte, error) {
	if store == nil || !store.Credentials.IsComplete() {
		return nil, integration.ErrStoreNotConfigured
	}
	client, err := c.clientFor(store)
	if err != nil {
		return nil, err
	}

	endpoint := c.config.BaseURL + "/suppliers/" + url.PathEscape(store.Credentials.SellerID) + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("marketplace: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+basicAuth(store.Credentials))
	req.Header.Set("User-Agent", store.Credentials.SellerID+" - "+c.config.UserAgentSuffix)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.logger.Warn("Marketplace request failed",
			zap.String("store_id", store.ID.String()),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", integration.ErrPlatformUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("Marketplace returned error status",
			zap.String("store_id", store.ID.String()),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", time.Since(start)),
		)
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, resp.StatusCode)
	}
	return body, nil
}

// clientFor returns the HTTP client for the store, building and caching a
// proxied client the first time a proxy URL is seen
func (c *MarketplaceClient) clientFor(store *integration.Store) (*http.Client, error) {
	if !store.HasProxy() {
		return c.httpClient, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if client, ok := c.proxyClients[store.ProxyURL]; ok {
		return client, nil
	}

	proxyURL, err := url.Parse(store.ProxyURL)
	if err != nil || proxyURL.Host == "" {
		return nil, fmt.Errorf("%w: invalid proxy URL for store %s", integration.ErrStoreNotConfigured, store.ID)
	}
	client := &http.Client{
		Timeout: c.config.timeout(),
		Transport: &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
		},
	}
	c.proxyClients[store.ProxyURL] = client
	return client, nil
}

func basicAuth(creds integration.Credentials) string {
	return base64.StdEncoding.EncodeToString([]byte(creds.APIKey + ":" + creds.APISecret))
}
