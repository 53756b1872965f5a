package fulfillment

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/domain/shared"
)

func createTestRoute(t *testing.T) *Route {
	route, err := NewRoute("Morning batch", "mugs", []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	return route
}

func TestNewRoute(t *testing.T) {
	t.Run("starts collecting", func(t *testing.T) {
		route := createTestRoute(t)
		assert.Equal(t, RouteStatusCollecting, route.Status)
		assert.Equal(t, 2, route.OrderCount())
		assert.Equal(t, 1, route.Version)
		assert.Nil(t, route.LabelPrintedAt)
	})

	tests := []struct {
		name   string
		rname  string
		orders []uuid.UUID
	}{
		{"empty name", "  ", []uuid.UUID{uuid.New()}},
		{"no orders", "Batch", nil},
		{"nil order id", "Batch", []uuid.UUID{uuid.Nil}},
		{"duplicate order", "Batch", func() []uuid.UUID { id := uuid.New(); return []uuid.UUID{id, id} }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoute(tt.rname, "", tt.orders)
			assert.True(t, errors.Is(err, shared.ErrValidationFailure))
		})
	}
}

func TestRoute_Transitions(t *testing.T) {
	t.Run("collecting to ready to completed", func(t *testing.T) {
		route := createTestRoute(t)
		require.NoError(t, route.MarkReady())
		assert.Equal(t, RouteStatusReady, route.Status)

		require.NoError(t, route.Complete(&LabelDocument{URL: "/labels/a.pdf"}))
		assert.Equal(t, RouteStatusCompleted, route.Status)
		assert.NotNil(t, route.LabelPrintedAt)
		assert.Equal(t, "/labels/a.pdf", route.LabelURL)
	})

	t.Run("collecting route finalizes without ready", func(t *testing.T) {
		route := createTestRoute(t)
		require.Equal(t, RouteStatusCollecting, route.Status)

		require.NoError(t, route.EnsureFinalizable())
		require.NoError(t, route.Complete(nil))
		assert.Equal(t, RouteStatusCompleted, route.Status)
	})

	t.Run("ready only from collecting", func(t *testing.T) {
		route := createTestRoute(t)
		require.NoError(t, route.MarkReady())
		assert.ErrorIs(t, route.MarkReady(), shared.ErrStateConflict)
	})

	t.Run("completed route cannot be finalized again", func(t *testing.T) {
		route := createTestRoute(t)
		require.NoError(t, route.Complete(nil))
		printedAt := *route.LabelPrintedAt

		err := route.Complete(nil)
		assert.ErrorIs(t, err, shared.ErrStateConflict)
		assert.Equal(t, RouteStatusCompleted, route.Status)
		assert.Equal(t, printedAt, *route.LabelPrintedAt)
	})

	t.Run("completed route cannot be cancelled", func(t *testing.T) {
		route := createTestRoute(t)
		require.NoError(t, route.Complete(nil))
		assert.ErrorIs(t, route.Cancel(), shared.ErrStateConflict)
		assert.Equal(t, RouteStatusCompleted, route.Status)
	})

	t.Run("cancel stamps time and is terminal", func(t *testing.T) {
		route := createTestRoute(t)
		require.NoError(t, route.Cancel())
		assert.Equal(t, RouteStatusCancelled, route.Status)
		assert.NotNil(t, route.CancelledAt)

		assert.ErrorIs(t, route.Cancel(), shared.ErrStateConflict)
		assert.ErrorIs(t, route.EnsureFinalizable(), shared.ErrStateConflict)
	})
}

func TestParseRouteStatus(t *testing.T) {
	s, err := ParseRouteStatus("ready")
	require.NoError(t, err)
	assert.Equal(t, RouteStatusReady, s)
	assert.False(t, s.IsTerminal())
	assert.True(t, RouteStatusCancelled.IsTerminal())

	_, err = ParseRouteStatus("DONE")
	assert.ErrorIs(t, err, shared.ErrValidationFailure)
}
