package integration

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/infrastructure/telemetry"
)

// StoreInboxService reads claims and customer questions of a store
// and answers questions through the marketplace client.
type StoreInboxService struct {
	storeRepo integration.StoreRepository
	client    integration.MarketplaceClient
	logger    *zap.Logger
}

// NewStoreInboxService creates a new StoreInboxService
func NewStoreInboxService(storeRepo integration.StoreRepository, client integration.MarketplaceClient, logger *zap.Logger) *StoreInboxService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreInboxService{
		storeRepo: storeRepo,
		client:    client,
		logger:    logger,
	}
}

// ListStores returns the active stores without their credentials
func (s *StoreInboxService) ListStores(ctx context.Context) ([]StoreResponse, error) {
	stores, err := s.storeRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StoreResponse, 0, len(stores))
	for i := range stores {
		out = append(out, ToStoreResponse(&stores[i]))
	}
	return out, nil
}

// ListClaims returns one page of claims of the store
func (s *StoreInboxService) ListClaims(ctx context.Context, storeID uuid.UUID, page int) (*integration.ClaimPage, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	claims, err := s.client.ListClaims(ctx, store, normalizePage(page))
	if err != nil {
		return nil, s.translate(store, "list claims", err)
	}
	return claims, nil
}

// ListQuestions returns one page of customer questions of the store
func (s *StoreInboxService) ListQuestions(ctx context.Context, storeID uuid.UUID, page int) (*integration.QuestionPage, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	questions, err := s.client.ListQuestions(ctx, store, normalizePage(page))
	if err != nil {
		return nil, s.translate(store, "list questions", err)
	}
	return questions, nil
}

// AnswerQuestion posts an answer to a customer question
func (s *StoreInboxService) AnswerQuestion(ctx context.Context, storeID uuid.UUID, questionID int64, req AnswerQuestionRequest) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return shared.NewValidationError("answer text is required")
	}
	if questionID <= 0 {
		return shared.NewValidationError("question id must be positive")
	}
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "store_inbox", "answer_question",
		telemetry.SpanAttrStoreID, store.ID,
		"question.id", questionID,
	)
	defer span.End()

	if err := s.client.AnswerQuestion(ctx, store, questionID, text); err != nil {
		telemetry.RecordError(span, err)
		return s.translate(store, "answer question", err)
	}
	s.logger.Info("Question answered",
		zap.String("store_id", store.ID.String()),
		zap.Int64("question_id", questionID),
	)
	return nil
}

func (s *StoreInboxService) loadStore(ctx context.Context, storeID uuid.UUID) (*integration.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("store", storeID)
		}
		return nil, err
	}
	if !store.IsActive {
		return nil, shared.NewValidationError("store " + store.Name + " is inactive")
	}
	if !store.Credentials.IsComplete() {
		return nil, shared.NewValidationError("store " + store.Name + " has incomplete credentials")
	}
	return store, nil
}

func (s *StoreInboxService) translate(store *integration.Store, op string, err error) error {
	if errors.Is(err, integration.ErrStoreNotConfigured) {
		return shared.NewValidationError("store " + store.Name + " has incomplete credentials")
	}
	s.logger.Warn("Marketplace request failed",
		zap.String("store_id", store.ID.String()),
		zap.String("operation", op),
		zap.Error(err),
	)
	if integration.IsPlatformError(err) {
		return shared.NewExternalAPIError("marketplace request failed", err)
	}
	return err
}

func normalizePage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}
