package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fulfillmentapp "github.com/erp/sellerops/internal/application/fulfillment"
	"github.com/erp/sellerops/internal/domain/fulfillment"
)

// RouteService manages the route lifecycle
type RouteService interface {
	Create(ctx context.Context, req fulfillmentapp.CreateRouteRequest) (*fulfillmentapp.RouteResponse, error)
	MarkReady(ctx context.Context, routeID uuid.UUID) (*fulfillmentapp.RouteResponse, error)
	Finalize(ctx context.Context, routeID uuid.UUID) (*fulfillmentapp.RouteResponse, error)
	Cancel(ctx context.Context, routeID uuid.UUID) (*fulfillmentapp.RouteResponse, error)
	List(ctx context.Context, statuses []fulfillment.RouteStatus) ([]fulfillmentapp.RouteResponse, error)
	Get(ctx context.Context, routeID uuid.UUID) (*fulfillmentapp.RouteResponse, error)
}

// RouteHandler handles route API endpoints
type RouteHandler struct {
	BaseHandler
	routeService RouteService
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeService RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// Create godoc
// @ID           createRoute
//
//	@Summary		Create a picking route
//	@Description	Claims the given orders into a new COLLECTING route. Orders already on an active route are rejected.
//	@Tags			routes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		fulfillmentapp.CreateRouteRequest	true	"Route orders"
//	@Success		201		{object}	APIResponse[fulfillmentapp.RouteResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/routes [post]
func (h *RouteHandler) Create(c *gin.Context) {
	var req fulfillmentapp.CreateRouteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	route, err := h.routeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, route)
}

// MarkReady godoc
// @ID           markRouteReady
//
//	@Summary		Mark a route ready
//	@Description	Moves a COLLECTING route to READY.
//	@Tags			routes
//	@Produce		json
//	@Param			id	path		string	true	"Route ID"	format(uuid)
//	@Success		200	{object}	APIResponse[fulfillmentapp.RouteResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/routes/{id}/ready [post]
func (h *RouteHandler) MarkReady(c *gin.Context) {
	h.transition(c, h.routeService.MarkReady)
}

// Finalize godoc
// @ID           finalizeRoute
//
//	@Summary		Finalize a route
//	@Description	Prints the shipping labels and completes a COLLECTING or READY route. COMPLETED and CANCELLED routes answer 409.
//	@Tags			routes
//	@Produce		json
//	@Param			id	path		string	true	"Route ID"	format(uuid)
//	@Success		200	{object}	APIResponse[fulfillmentapp.RouteResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Router			/routes/{id}/finalize [post]
func (h *RouteHandler) Finalize(c *gin.Context) {
	h.transition(c, h.routeService.Finalize)
}

// Cancel godoc
// @ID           cancelRoute
//
//	@Summary		Cancel a route
//	@Description	Cancels an unfinished route and releases its orders.
//	@Tags			routes
//	@Produce		json
//	@Param			id	path		string	true	"Route ID"	format(uuid)
//	@Success		200	{object}	APIResponse[fulfillmentapp.RouteResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/routes/{id}/cancel [post]
func (h *RouteHandler) Cancel(c *gin.Context) {
	h.transition(c, h.routeService.Cancel)
}

// List godoc
// @ID           listRoutes
//
//	@Summary		List routes
//	@Description	Returns routes, optionally filtered by a comma separated status list.
//	@Tags			routes
//	@Produce		json
//	@Param			status	query		string	false	"Statuses, e.g. COLLECTING,READY"
//	@Success		200	{object}	APIResponse[[]fulfillmentapp.RouteResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/routes [get]
func (h *RouteHandler) List(c *gin.Context) {
	var statuses []fulfillment.RouteStatus
	for _, raw := range queryList(c, "status") {
		status, err := fulfillment.ParseRouteStatus(raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		statuses = append(statuses, status)
	}

	routes, err := h.routeService.List(c.Request.Context(), statuses)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, routes)
}

// Get godoc
// @ID           getRoute
//
//	@Summary		Get a route
//	@Description	Returns one route with its orders.
//	@Tags			routes
//	@Produce		json
//	@Param			id	path		string	true	"Route ID"	format(uuid)
//	@Success		200	{object}	APIResponse[fulfillmentapp.RouteResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/routes/{id} [get]
func (h *RouteHandler) Get(c *gin.Context) {
	h.transition(c, h.routeService.Get)
}

func (h *RouteHandler) transition(c *gin.Context, op func(context.Context, uuid.UUID) (*fulfillmentapp.RouteResponse, error)) {
	routeID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	route, err := op(c.Request.Context(), routeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}
