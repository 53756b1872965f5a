package csvimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/catalog"
	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/shared"
)

// LoadResult summarizes one load run
type LoadResult struct {
	Rows       int        `json:"rows"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Skipped    int        `json:"skipped"`
	Errors     []RowError `json:"errors,omitempty"`
	ErrorCount int        `json:"error_count"`
	Truncated  bool       `json:"truncated"`
	DryRun     bool       `json:"dry_run"`
}

// LoaderOption configures a loader
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	dryRun    bool
	maxErrors int
	logger    *zap.Logger
}

// WithDryRun validates rows without saving them
func WithDryRun(dryRun bool) LoaderOption {
	return func(o *loaderOptions) {
		o.dryRun = dryRun
	}
}

// WithMaxErrors caps the row errors kept in the result
func WithMaxErrors(n int) LoaderOption {
	return func(o *loaderOptions) {
		o.maxErrors = n
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(o *loaderOptions) {
		o.logger = logger
	}
}

func newLoaderOptions(opts []LoaderOption) loaderOptions {
	o := loaderOptions{maxErrors: DefaultMaxErrors, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// rowFunc applies one row and reports whether it created a record
type rowFunc func(ctx context.Context, row *Row) (created bool, err error)

func run(ctx context.Context, p *Parser, o loaderOptions, apply rowFunc) (*LoadResult, error) {
	result := &LoadResult{DryRun: o.dryRun}
	errs := NewErrorList(o.maxErrors)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		var rowErr RowError
		if errors.As(err, &rowErr) {
			result.Rows++
			result.Skipped++
			errs.Add(rowErr)
			continue
		}
		if err != nil {
			return nil, err
		}
		if row.IsEmpty() {
			continue
		}

		result.Rows++
		created, err := apply(ctx, row)
		switch {
		case errors.As(err, &rowErr):
			result.Skipped++
			errs.Add(rowErr)
		case err != nil:
			return nil, fmt.Errorf("line %d: %w", row.Line, err)
		case created:
			result.Created++
		default:
			result.Updated++
		}
	}

	result.Errors = errs.Errors()
	result.ErrorCount = errs.Count()
	result.Truncated = errs.Truncated()
	o.logger.Info("CSV load finished",
		zap.Int("rows", result.Rows),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Bool("dry_run", result.DryRun),
	)
	return result, nil
}

// invalid turns a domain validation error into a RowError; other errors pass through
func invalid(line int, column string, err error) error {
	if errors.Is(err, shared.ErrValidationFailure) {
		return RowError{Line: line, Column: column, Message: err.Error()}
	}
	return err
}

// ProductLoader upserts products by barcode.
// Columns: barcode (required), title, merchant_sku, store_id.
type ProductLoader struct {
	repo catalog.ProductRepository
	opts loaderOptions
}

// NewProductLoader creates a product loader
func NewProductLoader(repo catalog.ProductRepository, opts ...LoaderOption) *ProductLoader {
	return &ProductLoader{repo: repo, opts: newLoaderOptions(opts)}
}

// Load reads every row of p
func (l *ProductLoader) Load(ctx context.Context, p *Parser) (*LoadResult, error) {
	if err := p.Require("barcode"); err != nil {
		return nil, err
	}
	seen := make(map[string]int)

	return run(ctx, p, l.opts, func(ctx context.Context, row *Row) (bool, error) {
		barcode := row.Get("barcode")
		if barcode == "" {
			return false, RowError{Line: row.Line, Column: "barcode", Message: "barcode is required"}
		}
		if first, dup := seen[barcode]; dup {
			return false, RowError{Line: row.Line, Column: "barcode",
				Message: fmt.Sprintf("duplicate barcode %s (first seen on line %d)", barcode, first)}
		}
		seen[barcode] = row.Line

		var storeID *uuid.UUID
		if raw := row.Get("store_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return false, RowError{Line: row.Line, Column: "store_id", Message: "invalid store id"}
			}
			storeID = &id
		}

		product, err := l.repo.FindByBarcode(ctx, barcode)
		created := false
		switch {
		case errors.Is(err, shared.ErrNotFound):
			product, err = catalog.NewProduct(barcode, row.Get("title"))
			if err != nil {
				return false, invalid(row.Line, "barcode", err)
			}
			created = true
		case err != nil:
			return false, err
		default:
			if title := row.Get("title"); title != "" {
				product.Title = title
			}
			product.Touch()
		}
		if sku := row.Get("merchant_sku"); sku != "" {
			product.MerchantSKU = sku
		}
		if storeID != nil {
			product.StoreID = storeID
		}

		if l.opts.dryRun {
			return created, nil
		}
		return created, l.repo.Save(ctx, product)
	})
}

// StoreLoader upserts stores by id, creating new ones when id is blank or unknown.
// Columns: name (required), id, seller_id, api_key, api_secret, proxy_url, active.
type StoreLoader struct {
	repo integration.StoreRepository
	opts loaderOptions
}

// NewStoreLoader creates a store loader
func NewStoreLoader(repo integration.StoreRepository, opts ...LoaderOption) *StoreLoader {
	return &StoreLoader{repo: repo, opts: newLoaderOptions(opts)}
}

// Load reads every row of p
func (l *StoreLoader) Load(ctx context.Context, p *Parser) (*LoadResult, error) {
	if err := p.Require("name"); err != nil {
		return nil, err
	}

	return run(ctx, p, l.opts, func(ctx context.Context, row *Row) (bool, error) {
		active := true
		if raw := row.Get("active"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return false, RowError{Line: row.Line, Column: "active", Message: "active must be true or false"}
			}
			active = v
		}

		creds := integration.Credentials{
			SellerID:  row.Get("seller_id"),
			APIKey:    row.Get("api_key"),
			APISecret: row.Get("api_secret"),
		}
		store, err := integration.NewStore(row.Get("name"), creds)
		if err != nil {
			return false, invalid(row.Line, "name", err)
		}

		created := true
		if raw := row.Get("id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return false, RowError{Line: row.Line, Column: "id", Message: "invalid store id"}
			}
			existing, err := l.repo.FindByID(ctx, id)
			switch {
			case errors.Is(err, shared.ErrNotFound):
				store.ID = id
			case err != nil:
				return false, err
			default:
				existing.Name = store.Name
				existing.Credentials = creds
				existing.Touch()
				store = existing
				created = false
			}
		}
		store.ProxyURL = row.Get("proxy_url")
		store.IsActive = active

		if l.opts.dryRun {
			return created, nil
		}
		return created, l.repo.Save(ctx, store)
	})
}
