package fulfillment

import (
	"context"

	"github.com/erp/sellerops/internal/domain/fulfillment"
	"github.com/erp/sellerops/internal/domain/trade"
)

// SuggestionService ranks batchable orders into route suggestions and
// serves the manual order filter
type SuggestionService struct {
	orderRepo trade.OrderRepository
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(orderRepo trade.OrderRepository) *SuggestionService {
	return &SuggestionService{orderRepo: orderRepo}
}

// SuggestRoutes returns ranked suggestions over the batchable orders that
// match the query
func (s *SuggestionService) SuggestRoutes(ctx context.Context, query OrderQuery) ([]SuggestionResponse, error) {
	orders, err := s.batchable(ctx, query)
	if err != nil {
		return nil, err
	}
	suggestions := fulfillment.SuggestRoutes(orders)
	out := make([]SuggestionResponse, len(suggestions))
	for i := range suggestions {
		out[i] = ToSuggestionResponse(&suggestions[i])
	}
	return out, nil
}

// FilterOrders returns the batchable orders that match the query
func (s *SuggestionService) FilterOrders(ctx context.Context, query OrderQuery) ([]OrderResponse, error) {
	orders, err := s.batchable(ctx, query)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

func (s *SuggestionService) batchable(ctx context.Context, query OrderQuery) ([]trade.Order, error) {
	filter := query.ToFilter()
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindAll(ctx, trade.OrderListFilter{
		StoreID:       query.StoreID,
		BatchableOnly: true,
	})
	if err != nil {
		return nil, err
	}
	return filter.Apply(orders), nil
}
