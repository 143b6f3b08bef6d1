package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/domain/repository"
	"github.com/trip-planner-service/internal/pkg/errors"
	"github.com/trip-planner-service/internal/pkg/validator"
	"github.com/trip-planner-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// ItineraryUseCase - оркестратор генерации маршрутов.
// Одна генерация - одна асинхронная единица работы: ровно один исходящий
// вызов генеративного сервиса и ровно один терминальный исход (готовый
// маршрут или ошибка). Отмена - через ctx. Дедупликации параллельных
// вызовов по одному черновику нет: это ответственность вызывающего.
type ItineraryUseCase struct {
	poiRepo        repository.POIRepository
	itineraryRepo  repository.ItineraryRepository
	generator      repository.TextGenerator
	logger         *zap.Logger
	candidateLimit int
	now            func() time.Time
}

func NewItineraryUseCase(
	poiRepo repository.POIRepository,
	itineraryRepo repository.ItineraryRepository,
	generator repository.TextGenerator,
	logger *zap.Logger,
	candidateLimit int,
) *ItineraryUseCase {
	return &ItineraryUseCase{
		poiRepo:        poiRepo,
		itineraryRepo:  itineraryRepo,
		generator:      generator,
		logger:         logger,
		candidateLimit: candidateLimit,
		now:            time.Now,
	}
}

// Generate генерирует маршрут по ограничениям пользователя
func (uc *ItineraryUseCase) Generate(
	ctx context.Context,
	req dto.GenerateItineraryRequest,
) (*domain.Itinerary, error) {
	// Validation happens before any external call
	if err := validator.Validate(&req); err != nil {
		return nil, errors.ErrValidation.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	limit := req.CandidateLimit
	if limit == 0 {
		limit = uc.candidateLimit
	}

	itinerary := &domain.Itinerary{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		DurationDays: req.DurationDays,
		TotalBudget:  req.TotalBudget,
		StartingCity: req.StartingCity,
		Interests:    req.Interests,
		TravelStyle:  req.TravelStyle,
		CreatedAt:    uc.now(),
	}

	// Candidate pool: the starting city first, top-rated catalog as fallback
	pois, err := uc.poiRepo.GetByCity(ctx, req.StartingCity, limit)
	if err != nil {
		uc.logger.Error("Failed to load candidate POIs",
			zap.String("city", req.StartingCity),
			zap.Error(err))
		return nil, err
	}
	if len(pois) == 0 {
		pois, err = uc.poiRepo.GetTopRated(ctx, limit)
		if err != nil {
			return nil, err
		}
	}

	prompt, err := BuildItineraryPrompt(itinerary, pois)
	if err != nil {
		uc.logger.Error("Failed to build generation prompt", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	// Exactly one outbound generation call per orchestration
	raw, err := uc.generator.GenerateContent(ctx, prompt)
	if err != nil {
		appErr := errors.ClassifyGeneration(err)
		uc.logger.Error("Itinerary generation failed",
			zap.String("itinerary_id", itinerary.ID),
			zap.String("category", appErr.Code),
			zap.Error(err))
		return nil, appErr
	}

	if err := ParseGeneratedItinerary(raw, itinerary, uc.now()); err != nil {
		uc.logger.Error("Failed to parse generated itinerary",
			zap.String("itinerary_id", itinerary.ID),
			zap.Error(err))
		return nil, errors.ErrItineraryParse
	}

	itinerary.OptimizationScore = OptimizationScore(itinerary)
	itinerary.Saved = true
	itinerary.UpdatedAt = uc.now()

	if err := uc.itineraryRepo.Upsert(ctx, itinerary); err != nil {
		uc.logger.Error("Failed to persist itinerary",
			zap.String("itinerary_id", itinerary.ID),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Itinerary generated",
		zap.String("itinerary_id", itinerary.ID),
		zap.Int("days", len(itinerary.DayPlans)),
		zap.Float64("estimated_cost", itinerary.EstimatedCost),
		zap.Float64("score", itinerary.OptimizationScore))

	return itinerary, nil
}

// GetByID возвращает сохранённый маршрут
func (uc *ItineraryUseCase) GetByID(ctx context.Context, id string) (*domain.Itinerary, error) {
	itinerary, err := uc.itineraryRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get itinerary", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return itinerary, nil
}

// ListByUser возвращает маршруты пользователя
func (uc *ItineraryUseCase) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Itinerary, error) {
	if limit == 0 {
		limit = 20
	}
	itineraries, err := uc.itineraryRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		uc.logger.Error("Failed to list itineraries", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return itineraries, nil
}
