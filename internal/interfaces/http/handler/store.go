package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	integrationapp "github.com/erp/sellerops/internal/application/integration"
	"github.com/erp/sellerops/internal/domain/integration"
)

// StoreInboxService reads the stores and their marketplace inbox
type StoreInboxService interface {
	ListStores(ctx context.Context) ([]integrationapp.StoreResponse, error)
	ListClaims(ctx context.Context, storeID uuid.UUID, page int) (*integration.ClaimPage, error)
	ListQuestions(ctx context.Context, storeID uuid.UUID, page int) (*integration.QuestionPage, error)
	AnswerQuestion(ctx context.Context, storeID uuid.UUID, questionID int64, req integrationapp.AnswerQuestionRequest) error
}

// StoreHandler handles store, claim and customer question endpoints
type StoreHandler struct {
	BaseHandler
	inbox StoreInboxService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(inbox StoreInboxService) *StoreHandler {
	return &StoreHandler{inbox: inbox}
}

// List godoc
// @ID           listStores
//
//	@Summary		List stores
//	@Description	Returns the active marketplace stores.
//	@Tags			stores
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]integrationapp.StoreResponse]
//	@Failure		500			{object}	ErrorResponse
//	@Router			/stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.inbox.ListStores(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stores)
}

// ListClaims godoc
// @ID           listStoreClaims
//
//	@Summary		List return claims
//	@Description	Returns one page of the store's marketplace return claims.
//	@Tags			stores
//	@Produce		json
//	@Param			storeId	path		string	true	"Store ID"	format(uuid)
//	@Param			page	query		int		false	"Page, zero based"	minimum(0)
//	@Success		200		{object}	APIResponse[[]integration.RemoteClaim]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Router			/stores/{storeId}/claims [get]
func (h *StoreHandler) ListClaims(c *gin.Context) {
	storeID, page, ok := h.storePage(c)
	if !ok {
		return
	}

	claims, err := h.inbox.ListClaims(c.Request.Context(), storeID, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, claims.Content, claims.Page, claims.TotalPages)
}

// ListQuestions godoc
// @ID           listStoreQuestions
//
//	@Summary		List customer questions
//	@Description	Returns one page of the store's customer questions.
//	@Tags			stores
//	@Produce		json
//	@Param			storeId	path		string	true	"Store ID"	format(uuid)
//	@Param			page	query		int		false	"Page, zero based"	minimum(0)
//	@Success		200		{object}	APIResponse[[]integration.RemoteQuestion]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Router			/stores/{storeId}/questions [get]
func (h *StoreHandler) ListQuestions(c *gin.Context) {
	storeID, page, ok := h.storePage(c)
	if !ok {
		return
	}

	questions, err := h.inbox.ListQuestions(c.Request.Context(), storeID, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, questions.Content, questions.Page, questions.TotalPages)
}

// AnswerQuestion godoc
// @ID           answerStoreQuestion
//
//	@Summary		Answer a customer question
//	@Description	Posts an answer to a customer question on the marketplace.
//	@Tags			stores
//	@Accept			json
//	@Produce		json
//	@Param			storeId		path		string								true	"Store ID"	format(uuid)
//	@Param			questionId	path		int									true	"Question ID"
//	@Param			request		body		integrationapp.AnswerQuestionRequest	true	"Answer"
//	@Success		204
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Router			/stores/{storeId}/questions/{questionId}/answer [post]
func (h *StoreHandler) AnswerQuestion(c *gin.Context) {
	storeID, ok := h.ParseUUIDParam(c, "storeId")
	if !ok {
		return
	}
	questionID, err := strconv.ParseInt(c.Param("questionId"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid questionId format")
		return
	}

	var req integrationapp.AnswerQuestionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.inbox.AnswerQuestion(c.Request.Context(), storeID, questionID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *StoreHandler) storePage(c *gin.Context) (uuid.UUID, int, bool) {
	storeID, ok := h.ParseUUIDParam(c, "storeId")
	if !ok {
		return uuid.Nil, 0, false
	}
	page, err := queryPage(c)
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, 0, false
	}
	return storeID, page, true
}
