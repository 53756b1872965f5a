package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	integrationapp "github.com/erp/sellerops/internal/application/integration"
	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/infrastructure/logger"
)

// SyncService is the manual sync surface of the sync coordinator
type SyncService interface {
	SyncStore(ctx context.Context, storeID uuid.UUID) (*integration.SyncResult, error)
	SyncAllStores(ctx context.Context) (*integration.SyncAllResult, error)
	Status(ctx context.Context) (*integrationapp.SyncStatusResponse, error)
}

// SyncHandler handles manually triggered order syncs
type SyncHandler struct {
	BaseHandler
	syncService SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncStore godoc
// @ID           syncStore
//
//	@Summary		Sync one store
//	@Description	Pulls the marketplace orders of one store. Answers 409 while another sync holds the lock.
//	@Tags			sync
//	@Produce		json
//	@Param			storeId	path		string	true	"Store ID"	format(uuid)
//	@Success		200		{object}	APIResponse[integration.SyncResult]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		429			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/sync/stores/{storeId} [post]
func (h *SyncHandler) SyncStore(c *gin.Context) {
	storeID, ok := h.ParseUUIDParam(c, "storeId")
	if !ok {
		return
	}

	ctx := logger.WithSyncTrigger(c.Request.Context(), integrationapp.TriggerManual)
	result, err := h.syncService.SyncStore(ctx, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncAllStores godoc
// @ID           syncAllStores
//
//	@Summary		Sync all stores
//	@Description	Pulls the marketplace orders of every active store under one lock.
//	@Tags			sync
//	@Produce		json
//	@Success		200	{object}	APIResponse[integration.SyncAllResult]
//	@Failure		409			{object}	ErrorResponse
//	@Failure		429			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/sync/stores [post]
func (h *SyncHandler) SyncAllStores(c *gin.Context) {
	ctx := logger.WithSyncTrigger(c.Request.Context(), integrationapp.TriggerManual)
	result, err := h.syncService.SyncAllStores(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Status godoc
// @ID           getSyncStatus
//
//	@Summary		Sync status
//	@Description	Reports whether a sync is running and the last completed run.
//	@Tags			sync
//	@Produce		json
//	@Success		200	{object}	APIResponse[integrationapp.SyncStatusResponse]
//	@Failure		500			{object}	ErrorResponse
//	@Router			/sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}
