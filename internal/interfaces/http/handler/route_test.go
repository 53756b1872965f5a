package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	fulfillmentapp "github.com/erp/sellerops/internal/application/fulfillment"
	"github.com/erp/sellerops/internal/domain/fulfillment"
	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/interfaces/http/dto"
)

func routeRoutes(h *RouteHandler) func(r *gin.Engine) {
	return func(r *gin.Engine) {
		r.POST("/routes", h.Create)
		r.GET("/routes", h.List)
		r.GET("/routes/:id", h.Get)
		r.POST("/routes/:id/ready", h.MarkReady)
		r.POST("/routes/:id/finalize", h.Finalize)
		r.POST("/routes/:id/cancel", h.Cancel)
	}
}

func sampleRoute(status fulfillment.RouteStatus) *fulfillmentapp.RouteResponse {
	return &fulfillmentapp.RouteResponse{
		ID:         uuid.New(),
		Name:       "Morning batch",
		Status:     string(status),
		OrderCount: 1,
		OrderIDs:   []uuid.UUID{uuid.New()},
		CreatedAt:  time.Now(),
	}
}

func TestRouteHandler_Create(t *testing.T) {
	orderID := uuid.New()
	version := 3

	t.Run("created", func(t *testing.T) {
		svc := new(MockRouteService)
		want := sampleRoute(fulfillment.RouteStatusCollecting)
		svc.On("Create", mock.Anything, fulfillmentapp.CreateRouteRequest{
			Name:   "Morning batch",
			Orders: []fulfillmentapp.RouteOrderInput{{OrderID: orderID, Version: &version}},
		}).Return(want, nil)

		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodPost, "/routes", map[string]any{
			"name":   "Morning batch",
			"orders": []map[string]any{{"order_id": orderID, "version": version}},
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var got fulfillmentapp.RouteResponse
		decodeData(t, w, &got)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, "COLLECTING", got.Status)
		svc.AssertExpectations(t)
	})

	t.Run("missing orders", func(t *testing.T) {
		svc := new(MockRouteService)
		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodPost, "/routes", map[string]any{"name": "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.NotEmpty(t, resp.Error.Details)
		assert.Equal(t, "orders", resp.Error.Details[0].Field)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("claimed order conflicts", func(t *testing.T) {
		svc := new(MockRouteService)
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewStateConflictError("order was modified"))

		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodPost, "/routes", map[string]any{
			"name":   "x",
			"orders": []map[string]any{{"order_id": orderID}},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRouteHandler_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status fulfillment.RouteStatus
	}{
		{"MarkReady", "MarkReady", "ready", fulfillment.RouteStatusReady},
		{"Finalize", "Finalize", "finalize", fulfillment.RouteStatusCompleted},
		{"Cancel", "Cancel", "cancel", fulfillment.RouteStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			svc := new(MockRouteService)
			svc.On(tt.method, mock.Anything, id).Return(sampleRoute(tt.status), nil)

			w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodPost, "/routes/"+id.String()+"/"+tt.path, nil)

			assert.Equal(t, http.StatusOK, w.Code)
			var got fulfillmentapp.RouteResponse
			decodeData(t, w, &got)
			assert.Equal(t, string(tt.status), got.Status)
			svc.AssertExpectations(t)
		})
	}

	t.Run("illegal transition", func(t *testing.T) {
		id := uuid.New()
		svc := new(MockRouteService)
		svc.On("Finalize", mock.Anything, id).
			Return(nil, shared.NewStateConflictError("route must be READY to finalize"))

		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodPost, "/routes/"+id.String()+"/finalize", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("label failure", func(t *testing.T) {
		id := uuid.New()
		svc := new(MockRouteService)
		svc.On("Finalize", mock.Anything, id).
			Return(nil, shared.NewExternalAPIError("label printing failed", assert.AnError))

		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodPost, "/routes/"+id.String()+"/finalize", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(MockRouteService)
		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodPost, "/routes/xyz/ready", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouteHandler_List(t *testing.T) {
	t.Run("parses status filter", func(t *testing.T) {
		svc := new(MockRouteService)
		svc.On("List", mock.Anything, []fulfillment.RouteStatus{fulfillment.RouteStatusCollecting, fulfillment.RouteStatusReady}).
			Return([]fulfillmentapp.RouteResponse{*sampleRoute(fulfillment.RouteStatusReady)}, nil)

		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodGet, "/routes?status=collecting,READY", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []fulfillmentapp.RouteResponse
		decodeData(t, w, &got)
		assert.Len(t, got, 1)
		svc.AssertExpectations(t)
	})

	t.Run("no filter", func(t *testing.T) {
		svc := new(MockRouteService)
		svc.On("List", mock.Anything, []fulfillment.RouteStatus(nil)).Return([]fulfillmentapp.RouteResponse{}, nil)

		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodGet, "/routes", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := new(MockRouteService)
		w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodGet, "/routes?status=SHIPPED", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, w).Error.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestRouteHandler_Get(t *testing.T) {
	id := uuid.New()
	svc := new(MockRouteService)
	svc.On("Get", mock.Anything, id).Return(nil, shared.NewNotFoundError("route", id))

	w := perform(routeRoutes(NewRouteHandler(svc)), http.MethodGet, "/routes/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decode(t, w).Error.Code)
}
