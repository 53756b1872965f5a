package fulfillment

import (
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/trade"
)

// SuggestionType classifies a route suggestion
type SuggestionType string

const (
	// SuggestionTypeSingle groups single-product orders of one total quantity
	SuggestionTypeSingle SuggestionType = "SINGLE"
	// SuggestionTypeMixed groups multi-product orders of one total quantity
	SuggestionTypeMixed SuggestionType = "MIXED"
	// SuggestionTypeAllSingles groups every single-product order of a store
	SuggestionTypeAllSingles SuggestionType = "ALL_SINGLES"
)

// Scoring weights
const (
	AllSinglesPriority   = 100
	singleCountWeight    = 10
	singleQuantityOffset = 10
	mixedCountWeight     = 5
	minAllSinglesOrders  = 2
)

// SuggestionKey identifies a suggestion. Quantity is zero for ALL_SINGLES.
type SuggestionKey struct {
	StoreID  uuid.UUID
	Type     SuggestionType
	Quantity int
}

// String renders the stable suggestion id
func (k SuggestionKey) String() string {
	if k.Type == SuggestionTypeAllSingles {
		return fmt.Sprintf("%s:%s", k.StoreID, k.Type)
	}
	return fmt.Sprintf("%s:%s:%d", k.StoreID, k.Type, k.Quantity)
}

// ProductStat aggregates one product across the orders of a suggestion
type ProductStat struct {
	ProductID     string
	ProductName   string
	OrderCount    int
	TotalQuantity int
}

// Suggestion is a ranked candidate batch of orders
type Suggestion struct {
	Key      SuggestionKey
	Priority int
	Products []ProductStat
	Orders   []trade.Order
}

// ID returns the stable suggestion id
func (s *Suggestion) ID() string {
	return s.Key.String()
}

// OrderCount returns the number of orders in the suggestion
func (s *Suggestion) OrderCount() int {
	return len(s.Orders)
}

// OrderIDs returns the ids of the suggested orders
func (s *Suggestion) OrderIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Orders))
	for i := range s.Orders {
		ids[i] = s.Orders[i].ID
	}
	return ids
}

// SuggestRoutes groups batchable orders into ranked suggestions.
//
// Orders are partitioned by store and classified as single-product or mixed.
// Singles bucketed by total quantity score count*10 + (10 - quantity), mixed
// buckets score count*5, and a store with at least two singles also gets an
// ALL_SINGLES suggestion scored 100. The result is sorted by priority, highest
// first; equal priorities keep store, type and quantity order.
func SuggestRoutes(orders []trade.Order) []Suggestion {
	byStore := make(map[uuid.UUID][]trade.Order)
	for _, o := range orders {
		if !o.IsBatchable() || len(o.Lines) == 0 {
			continue
		}
		byStore[o.StoreID] = append(byStore[o.StoreID], o)
	}

	storeIDs := make([]uuid.UUID, 0, len(byStore))
	for id := range byStore {
		storeIDs = append(storeIDs, id)
	}
	slices.SortFunc(storeIDs, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})

	var suggestions []Suggestion
	for _, storeID := range storeIDs {
		suggestions = append(suggestions, suggestForStore(storeID, byStore[storeID])...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority > suggestions[j].Priority
	})
	return suggestions
}

func suggestForStore(storeID uuid.UUID, orders []trade.Order) []Suggestion {
	singles := make(map[int][]trade.Order)
	mixed := make(map[int][]trade.Order)
	var allSingles []trade.Order

	for _, o := range orders {
		qty := o.TotalQuantity()
		if len(o.DistinctProductIDs()) == 1 {
			singles[qty] = append(singles[qty], o)
			allSingles = append(allSingles, o)
		} else {
			mixed[qty] = append(mixed[qty], o)
		}
	}

	var out []Suggestion
	if len(allSingles) >= minAllSinglesOrders {
		out = append(out, newSuggestion(
			SuggestionKey{StoreID: storeID, Type: SuggestionTypeAllSingles},
			AllSinglesPriority, allSingles))
	}
	for _, qty := range sortedKeys(singles) {
		bucket := singles[qty]
		out = append(out, newSuggestion(
			SuggestionKey{StoreID: storeID, Type: SuggestionTypeSingle, Quantity: qty},
			len(bucket)*singleCountWeight+(singleQuantityOffset-qty), bucket))
	}
	for _, qty := range sortedKeys(mixed) {
		bucket := mixed[qty]
		out = append(out, newSuggestion(
			SuggestionKey{StoreID: storeID, Type: SuggestionTypeMixed, Quantity: qty},
			len(bucket)*mixedCountWeight, bucket))
	}
	return out
}

func newSuggestion(key SuggestionKey, priority int, orders []trade.Order) Suggestion {
	return Suggestion{
		Key:      key,
		Priority: priority,
		Products: productStats(orders),
		Orders:   orders,
	}
}

func productStats(orders []trade.Order) []ProductStat {
	stats := make(map[string]*ProductStat)
	for _, o := range orders {
		for _, id := range o.DistinctProductIDs() {
			st, ok := stats[id]
			if !ok {
				st = &ProductStat{ProductID: id}
				stats[id] = st
			}
			st.OrderCount++
		}
		for _, l := range o.Lines {
			st := stats[l.ProductID]
			st.TotalQuantity += l.Quantity
			if st.ProductName == "" {
				st.ProductName = l.ProductName
			}
		}
	}

	out := make([]ProductStat, 0, len(stats))
	for _, st := range stats {
		out = append(out, *st)
	}
	slices.SortFunc(out, func(a, b ProductStat) int {
		switch {
		case a.ProductID < b.ProductID:
			return -1
		case a.ProductID > b.ProductID:
			return 1
		}
		return 0
	})
	return out
}

func sortedKeys(m map[int][]trade.Order) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
