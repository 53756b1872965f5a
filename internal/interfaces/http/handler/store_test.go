package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	integrationapp "github.com/erp/sellerops/internal/application/integration"
	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/interfaces/http/dto"
)

func storeRoutes(h *StoreHandler) func(r *gin.Engine) {
	return func(r *gin.Engine) {
		r.GET("/stores", h.List)
		r.GET("/stores/:storeId/claims", h.ListClaims)
		r.GET("/stores/:storeId/questions", h.ListQuestions)
		r.POST("/stores/:storeId/questions/:questionId/answer", h.AnswerQuestion)
	}
}

func TestStoreHandler_List(t *testing.T) {
	svc := new(MockStoreInboxService)
	svc.On("ListStores", mock.Anything).Return([]integrationapp.StoreResponse{
		{ID: uuid.New(), Name: "Main", IsActive: true, HasCredentials: true},
	}, nil)

	w := perform(storeRoutes(NewStoreHandler(svc)), http.MethodGet, "/stores", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []integrationapp.StoreResponse
	decodeData(t, w, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Main", got[0].Name)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestStoreHandler_ListClaims(t *testing.T) {
	storeID := uuid.New()

	t.Run("page with meta", func(t *testing.T) {
		svc := new(MockStoreInboxService)
		svc.On("ListClaims", mock.Anything, storeID, 2).Return(&integration.ClaimPage{
			Page: 2, TotalPages: 4,
			Content: []integration.RemoteClaim{{ID: "c1", OrderNumber: "100"}},
		}, nil)

		w := perform(storeRoutes(NewStoreHandler(svc)), http.MethodGet, "/stores/"+storeID.String()+"/claims?page=2", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 4, resp.Meta.TotalPages)
		var claims []integration.RemoteClaim
		decodeData(t, w, &claims)
		assert.Equal(t, "c1", claims[0].ID)
	})

	t.Run("negative page", func(t *testing.T) {
		svc := new(MockStoreInboxService)
		w := perform(storeRoutes(NewStoreHandler(svc)), http.MethodGet, "/stores/"+storeID.String()+"/claims?page=-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("marketplace failure", func(t *testing.T) {
		svc := new(MockStoreInboxService)
		svc.On("ListClaims", mock.Anything, storeID, 0).
			Return(nil, shared.NewExternalAPIError("marketplace request failed", assert.AnError))

		w := perform(storeRoutes(NewStoreHandler(svc)), http.MethodGet, "/stores/"+storeID.String()+"/claims", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, dto.ErrCodeExternalAPIFailure, decode(t, w).Error.Code)
	})
}

func TestStoreHandler_ListQuestions(t *testing.T) {
	storeID := uuid.New()
	svc := new(MockStoreInboxService)
	svc.On("ListQuestions", mock.Anything, storeID, 0).Return(&integration.QuestionPage{
		TotalPages: 1,
		Content:    []integration.RemoteQuestion{{ID: 7, Text: "Is it cotton?"}},
	}, nil)

	w := perform(storeRoutes(NewStoreHandler(svc)), http.MethodGet, "/stores/"+storeID.String()+"/questions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var questions []integration.RemoteQuestion
	decodeData(t, w, &questions)
	assert.Equal(t, int64(7), questions[0].ID)
}

func TestStoreHandler_AnswerQuestion(t *testing.T) {
	storeID := uuid.New()
	target := "/stores/" + storeID.String() + "/questions/42/answer"

	t.Run("answered", func(t *testing.T) {
		svc := new(MockStoreInboxService)
		svc.On("AnswerQuestion", mock.Anything, storeID, int64(42), integrationapp.AnswerQuestionRequest{Text: "Yes"}).Return(nil)

		w := perform(storeRoutes(NewStoreHandler(svc)), http.MethodPost, target, map[string]string{"text": "Yes"})

		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing text", func(t *testing.T) {
		svc := new(MockStoreInboxService)
		w := perform(storeRoutes(NewStoreHandler(svc)), http.MethodPost, target, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, w).Error.Code)
	})

	t.Run("invalid question id", func(t *testing.T) {
		svc := new(MockStoreInboxService)
		w := perform(storeRoutes(NewStoreHandler(svc)), http.MethodPost,
			"/stores/"+storeID.String()+"/questions/abc/answer", map[string]string{"text": "Yes"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "AnswerQuestion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
