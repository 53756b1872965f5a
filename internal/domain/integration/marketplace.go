package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrPlatformUnavailable     = errors.New("integration: marketplace temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("integration: marketplace request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid marketplace response")
	ErrStoreNotConfigured      = errors.New("integration: store credentials incomplete")
	ErrSyncInProgress          = errors.New("integration: sync already in progress")
)

// IsPlatformError reports whether err came from talking to the marketplace
func IsPlatformError(err error) bool {
	return errors.Is(err, ErrPlatformUnavailable) ||
		errors.Is(err, ErrPlatformRequestFailed) ||
		errors.Is(err, ErrPlatformInvalidResponse)
}

// ---------------------------------------------------------------------------
// Remote order types
// ---------------------------------------------------------------------------

// RemoteID is an identifier the marketplace sends either as a JSON number or
// as a string. Tracking numbers in particular are often alphanumeric.
type RemoteID string

func (id *RemoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RemoteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("remote id: %w", err)
	}
	*id = RemoteID(n)
	return nil
}

func (id RemoteID) String() string { return string(id) }

// RemoteOrderLine is one line of a marketplace shipment package
type RemoteOrderLine struct {
	Barcode     string          `json:"barcode"`
	ProductName string          `json:"productName"`
	MerchantSKU string          `json:"merchantSku"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// RemoteOrder is a shipment package as returned by the marketplace
type RemoteOrder struct {
	ShipmentPackageID   RemoteID          `json:"shipmentPackageId"`
	OrderNumber         string            `json:"orderNumber"`
	Status              string            `json:"status"`
	CustomerFirstName   string            `json:"customerFirstName"`
	CustomerLastName    string            `json:"customerLastName"`
	OrderDate           int64             `json:"orderDate"` // epoch millis
	TotalPrice          decimal.Decimal   `json:"totalPrice"`
	GrossAmount         decimal.Decimal   `json:"grossAmount"`
	TotalDiscount       decimal.Decimal   `json:"totalDiscount"`
	CurrencyCode        string            `json:"currencyCode"`
	CargoTrackingNumber RemoteID          `json:"cargoTrackingNumber"`
	CargoProviderName   string            `json:"cargoProviderName"`
	Lines               []RemoteOrderLine `json:"lines"`

	// Raw is the verbatim JSON of this order, filled by the client
	Raw json.RawMessage `json:"-"`
	// DecodeErr is set when this element of the page could not be decoded.
	// Only the key fields and Raw are usable then.
	DecodeErr error `json:"-"`
}

// ExternalID returns the stable upsert key of the order
func (o *RemoteOrder) ExternalID() string {
	return o.ShipmentPackageID.String()
}

// OrderedAt converts the epoch-millis order date
func (o *RemoteOrder) OrderedAt() time.Time {
	if o.OrderDate == 0 {
		return time.Time{}
	}
	return time.UnixMilli(o.OrderDate).UTC()
}

// ProductIDs returns the distinct barcodes referenced by the order, in line order
func (o *RemoteOrder) ProductIDs() []string {
	seen := make(map[string]bool, len(o.Lines))
	ids := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		if seen[l.Barcode] {
			continue
		}
		seen[l.Barcode] = true
		ids = append(ids, l.Barcode)
	}
	return ids
}

// OrderPage is one page of a paginated order listing
type OrderPage struct {
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalPages    int           `json:"totalPages"`
	TotalElements int           `json:"totalElements"`
	Content       []RemoteOrder `json:"content"`
}

// HasNext reports whether another page follows this one (pages are 0-based)
func (p *OrderPage) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

// PageRequest selects a page of remote orders
type PageRequest struct {
	Status string
	Page   int
	Size   int
}

// ---------------------------------------------------------------------------
// Claims and questions
// ---------------------------------------------------------------------------

// RemoteClaim is a customer return claim
type RemoteClaim struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	ClaimDate   int64           `json:"claimDate"`
	Items       json.RawMessage `json:"items,omitempty"`
}

// ClaimPage is one page of claims
type ClaimPage struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Content    []RemoteClaim `json:"content"`
}

// RemoteQuestion is a customer question about a product
type RemoteQuestion struct {
	ID           int64  `json:"id"`
	Text         string `json:"text"`
	Status       string `json:"status"`
	ProductName  string `json:"productName"`
	CreationDate int64  `json:"creationDate"`
}

// QuestionPage is one page of questions
type QuestionPage struct {
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Content    []RemoteQuestion `json:"content"`
}

// MarketplaceClient is the port for the marketplace seller API
type MarketplaceClient interface {
	// ListOrders fetches one page of shipment packages for the store
	ListOrders(ctx context.Context, store *Store, req PageRequest) (*OrderPage, error)

	// ListClaims fetches one page of claims for the store
	ListClaims(ctx context.Context, store *Store, page int) (*ClaimPage, error)

	// ListQuestions fetches one page of customer questions for the store
	ListQuestions(ctx context.Context, store *Store, page int) (*QuestionPage, error)

	// AnswerQuestion posts an answer to a customer question
	AnswerQuestion(ctx context.Context, store *Store, questionID int64, text string) error
}
