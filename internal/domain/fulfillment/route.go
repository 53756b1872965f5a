package fulfillment

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/shared"
)

// RouteStatus represents the status of a picking route
type RouteStatus string

const (
	RouteStatusCollecting RouteStatus = "COLLECTING"
	RouteStatusReady      RouteStatus = "READY"
	RouteStatusCompleted  RouteStatus = "COMPLETED"
	RouteStatusCancelled  RouteStatus = "CANCELLED"
)

// IsValid checks if the status is a valid RouteStatus
func (s RouteStatus) IsValid() bool {
	switch s {
	case RouteStatusCollecting, RouteStatusReady, RouteStatusCompleted, RouteStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s RouteStatus) IsTerminal() bool {
	return s == RouteStatusCompleted || s == RouteStatusCancelled
}

// String returns the string representation of RouteStatus
func (s RouteStatus) String() string {
	return string(s)
}

// ParseRouteStatus parses a status name, case-insensitively
func ParseRouteStatus(raw string) (RouteStatus, error) {
	s := RouteStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", shared.NewValidationError("unknown route status: " + raw)
	}
	return s, nil
}

// Route is a named batch of orders picked and labelled together
type Route struct {
	shared.BaseAggregateRoot
	Name           string
	Description    string
	Status         RouteStatus
	OrderIDs       []uuid.UUID
	LabelPrintedAt *time.Time
	LabelURL       string
	CancelledAt    *time.Time
}

// NewRoute creates a route in COLLECTING over the given orders
func NewRoute(name, description string, orderIDs []uuid.UUID) (*Route, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("route name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("route name cannot exceed 200 characters")
	}
	if len(orderIDs) == 0 {
		return nil, shared.NewValidationError("route must contain at least one order")
	}
	seen := make(map[uuid.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		if id == uuid.Nil {
			return nil, shared.NewValidationError("order ID cannot be empty")
		}
		if seen[id] {
			return nil, shared.NewValidationError("duplicate order in route: " + id.String())
		}
		seen[id] = true
	}

	return &Route{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Status:            RouteStatusCollecting,
		OrderIDs:          slices.Clone(orderIDs),
	}, nil
}

// MarkReady moves a collecting route to READY once picking is done
func (r *Route) MarkReady() error {
	if r.Status != RouteStatusCollecting {
		return shared.NewStateConflictError("only a collecting route can be marked ready, route is " + string(r.Status))
	}
	r.Status = RouteStatusReady
	r.Touch()
	return nil
}

// EnsureFinalizable checks the route can still be completed
func (r *Route) EnsureFinalizable() error {
	switch r.Status {
	case RouteStatusCompleted:
		return shared.NewStateConflictError("route is already completed")
	case RouteStatusCancelled:
		return shared.NewStateConflictError("cannot finalize a cancelled route")
	}
	return nil
}

// Complete marks the route COMPLETED after its labels were printed
func (r *Route) Complete(label *LabelDocument) error {
	if err := r.EnsureFinalizable(); err != nil {
		return err
	}
	now := time.Now()
	r.Status = RouteStatusCompleted
	r.LabelPrintedAt = &now
	if label != nil {
		r.LabelURL = label.URL
	}
	r.Touch()
	return nil
}

// Cancel marks the route CANCELLED. The route row is kept.
func (r *Route) Cancel() error {
	switch r.Status {
	case RouteStatusCompleted:
		return shared.NewStateConflictError("cannot cancel a completed route")
	case RouteStatusCancelled:
		return shared.NewStateConflictError("route is already cancelled")
	}
	now := time.Now()
	r.Status = RouteStatusCancelled
	r.CancelledAt = &now
	r.Touch()
	return nil
}

// OrderCount returns the number of member orders
func (r *Route) OrderCount() int {
	return len(r.OrderIDs)
}
