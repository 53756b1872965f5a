package ecommerce

import (
	"errors"
	"strings"
)

const (
	// DefaultMarketplaceBaseURL is the production seller API gateway
	DefaultMarketplaceBaseURL = "https://api.trendyol.com/sapigw"
	// DefaultTimeoutSeconds is the fixed per-request timeout
	DefaultTimeoutSeconds = 30
	// DefaultPageSize is the largest page the order endpoint serves
	DefaultPageSize = 200
	// DefaultUserAgentSuffix is appended to the seller id in the User-Agent header
	DefaultUserAgentSuffix = "SelfIntegration"
)

// ErrMarketplaceConfigInvalidBaseURL indicates a base URL without scheme
var ErrMarketplaceConfigInvalidBaseURL = errors.New("marketplace: base URL must be absolute")

// MarketplaceConfig holds configuration for the marketplace seller API
type MarketplaceConfig struct {
	// BaseURL is the API gateway root, without trailing slash
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
	// PageSize is used when a page request does not set one
	PageSize int
	// UserAgentSuffix follows the seller id in the User-Agent header
	UserAgentSuffix string
}

// NewMarketplaceConfig creates a configuration with defaults
func NewMarketplaceConfig(baseURL string) *MarketplaceConfig {
	return &MarketplaceConfig{
		BaseURL:         baseURL,
		TimeoutSeconds:  DefaultTimeoutSeconds,
		PageSize:        DefaultPageSize,
		UserAgentSuffix: DefaultUserAgentSuffix,
	}
}

// Validate fills defaults and checks the base URL
func (c *MarketplaceConfig) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultMarketplaceBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return ErrMarketplaceConfigInvalidBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.PageSize <= 0 || c.PageSize > DefaultPageSize {
		c.PageSize = DefaultPageSize
	}
	if c.UserAgentSuffix == "" {
		c.UserAgentSuffix = DefaultUserAgentSuffix
	}
	return nil
}
