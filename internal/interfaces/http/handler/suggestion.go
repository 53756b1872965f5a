package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	fulfillmentapp "github.com/erp/sellerops/internal/application/fulfillment"
	"github.com/erp/sellerops/internal/domain/trade"
)

// SuggestionService groups batchable orders and applies the manual filter
type SuggestionService interface {
	SuggestRoutes(ctx context.Context, query fulfillmentapp.OrderQuery) ([]fulfillmentapp.SuggestionResponse, error)
	FilterOrders(ctx context.Context, query fulfillmentapp.OrderQuery) ([]fulfillmentapp.OrderResponse, error)
}

// SuggestionHandler serves route suggestions and the batchable order filter
type SuggestionHandler struct {
	BaseHandler
	suggestionService SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(suggestionService SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// SuggestRoutes godoc
// @ID           suggestRoutes
//
//	@Summary		Suggest routes
//	@Description	Groups batchable orders by product composition, largest group first.
//	@Tags			routes
//	@Produce		json
//	@Param			store_id		query		string	false	"Store ID"	format(uuid)
//	@Param			product_ids		query		string	false	"Comma separated product IDs"
//	@Param			quantities		query		string	false	"Comma separated quantities, aligned with product_ids"
//	@Param			status			query		string	false	"Order status"
//	@Success		200			{object}	APIResponse[[]fulfillmentapp.SuggestionResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/routes/suggestions [get]
func (h *SuggestionHandler) SuggestRoutes(c *gin.Context) {
	query, ok := h.parseQuery(c)
	if !ok {
		return
	}

	suggestions, err := h.suggestionService.SuggestRoutes(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestions)
}

// FilterOrders godoc
// @ID           filterBatchableOrders
//
//	@Summary		Filter batchable orders
//	@Description	Returns the batchable orders whose composition matches the given products and quantities.
//	@Tags			orders
//	@Produce		json
//	@Param			store_id		query		string	false	"Store ID"	format(uuid)
//	@Param			product_ids		query		string	false	"Comma separated product IDs"
//	@Param			quantities		query		string	false	"Comma separated quantities, aligned with product_ids"
//	@Param			status			query		string	false	"Order status"
//	@Success		200			{object}	APIResponse[[]fulfillmentapp.OrderResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/orders/batchable [get]
func (h *SuggestionHandler) FilterOrders(c *gin.Context) {
	query, ok := h.parseQuery(c)
	if !ok {
		return
	}

	orders, err := h.suggestionService.FilterOrders(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

func (h *SuggestionHandler) parseQuery(c *gin.Context) (fulfillmentapp.OrderQuery, bool) {
	var query fulfillmentapp.OrderQuery
	var err error

	query.ProductIDs = queryList(c, "product_ids")
	if query.Quantities, err = queryIntList(c, "quantities"); err != nil {
		h.HandleError(c, err)
		return query, false
	}
	if query.StoreID, err = queryUUID(c, "store_id"); err != nil {
		h.HandleError(c, err)
		return query, false
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := trade.ParseOrderStatus(raw)
		if err != nil {
			h.HandleError(c, err)
			return query, false
		}
		query.Status = &status
	}
	return query, true
}
