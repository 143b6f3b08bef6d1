package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-planner-service/internal/domain"
	apperrors "github.com/trip-planner-service/internal/pkg/errors"
	"github.com/trip-planner-service/internal/usecase"
	"github.com/trip-planner-service/internal/usecase/dto"
)

func validGenerateRequest() dto.GenerateItineraryRequest {
	return dto.GenerateItineraryRequest{
		DurationDays: 2,
		TotalBudget:  3000,
		StartingCity: "Marrakech",
		Interests:    []string{"history"},
		TravelStyle:  "budget",
	}
}

func catalogPOIs() []*domain.POI {
	cost := 70.0
	return []*domain.POI{
		{ID: "1", Name: "Jardin Majorelle", City: "Marrakech", Category: "garden", TicketCost: &cost},
	}
}

func TestItineraryUseCase_Generate(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("success persists parsed itinerary", func(t *testing.T) {
		mockPOI := &MockPOIRepository{}
		mockItinerary := &MockItineraryRepository{}
		mockGen := &MockTextGenerator{}

		mockPOI.On("GetByCity", mock.Anything, "Marrakech", 30).Return(catalogPOIs(), nil)
		mockGen.On("GenerateContent", mock.Anything, mock.AnythingOfType("string")).
			Return(validGenerated, nil)
		mockItinerary.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Itinerary")).
			Return(nil)

		uc := usecase.NewItineraryUseCase(mockPOI, mockItinerary, mockGen, logger, 30)

		it, err := uc.Generate(ctx, validGenerateRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, it.ID)
		assert.Len(t, it.DayPlans, 2)
		assert.True(t, it.Saved)
		assert.Greater(t, it.OptimizationScore, 0.0)
		mockGen.AssertNumberOfCalls(t, "GenerateContent", 1)
		mockItinerary.AssertCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("validation fails before any external call", func(t *testing.T) {
		mockPOI := &MockPOIRepository{}
		mockItinerary := &MockItineraryRepository{}
		mockGen := &MockTextGenerator{}

		uc := usecase.NewItineraryUseCase(mockPOI, mockItinerary, mockGen, logger, 30)

		req := validGenerateRequest()
		req.DurationDays = 0

		_, err := uc.Generate(ctx, req)

		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		mockPOI.AssertNotCalled(t, "GetByCity")
		mockGen.AssertNotCalled(t, "GenerateContent")
	})

	t.Run("falls back to top rated when city has no places", func(t *testing.T) {
		mockPOI := &MockPOIRepository{}
		mockItinerary := &MockItineraryRepository{}
		mockGen := &MockTextGenerator{}

		mockPOI.On("GetByCity", mock.Anything, "Marrakech", 30).Return([]*domain.POI{}, nil)
		mockPOI.On("GetTopRated", mock.Anything, 30).Return(catalogPOIs(), nil)
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(validGenerated, nil)
		mockItinerary.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewItineraryUseCase(mockPOI, mockItinerary, mockGen, logger, 30)

		_, err := uc.Generate(ctx, validGenerateRequest())

		require.NoError(t, err)
		mockPOI.AssertCalled(t, "GetTopRated", mock.Anything, 30)
	})

	t.Run("generation error maps to closed category", func(t *testing.T) {
		mockPOI := &MockPOIRepository{}
		mockItinerary := &MockItineraryRepository{}
		mockGen := &MockTextGenerator{}

		mockPOI.On("GetByCity", mock.Anything, "Marrakech", 30).Return(catalogPOIs(), nil)
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).
			Return("", errors.New("googleapi: Error 429: quota exceeded"))

		uc := usecase.NewItineraryUseCase(mockPOI, mockItinerary, mockGen, logger, 30)

		_, err := uc.Generate(ctx, validGenerateRequest())

		assert.ErrorIs(t, err, apperrors.ErrGenerationRateLimited)
		mockItinerary.AssertNotCalled(t, "Upsert")
	})

	t.Run("parse failure never saves a partial itinerary", func(t *testing.T) {
		mockPOI := &MockPOIRepository{}
		mockItinerary := &MockItineraryRepository{}
		mockGen := &MockTextGenerator{}

		mockPOI.On("GetByCity", mock.Anything, "Marrakech", 30).Return(catalogPOIs(), nil)
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).
			Return("Sorry, I can only answer travel questions.", nil)

		uc := usecase.NewItineraryUseCase(mockPOI, mockItinerary, mockGen, logger, 30)

		_, err := uc.Generate(ctx, validGenerateRequest())

		assert.ErrorIs(t, err, apperrors.ErrItineraryParse)
		mockItinerary.AssertNotCalled(t, "Upsert")
	})

	t.Run("request candidate limit overrides default", func(t *testing.T) {
		mockPOI := &MockPOIRepository{}
		mockItinerary := &MockItineraryRepository{}
		mockGen := &MockTextGenerator{}

		mockPOI.On("GetByCity", mock.Anything, "Marrakech", 5).Return(catalogPOIs(), nil)
		mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(validGenerated, nil)
		mockItinerary.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewItineraryUseCase(mockPOI, mockItinerary, mockGen, logger, 30)

		req := validGenerateRequest()
		req.CandidateLimit = 5

		_, err := uc.Generate(ctx, req)

		require.NoError(t, err)
		mockPOI.AssertCalled(t, "GetByCity", mock.Anything, "Marrakech", 5)
	})
}

func TestItineraryUseCase_GetByID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("not found passes through", func(t *testing.T) {
		mockItinerary := &MockItineraryRepository{}
		mockItinerary.On("GetByID", mock.Anything, "missing").
			Return(nil, apperrors.ErrItineraryNotFound)

		uc := usecase.NewItineraryUseCase(&MockPOIRepository{}, mockItinerary, &MockTextGenerator{}, logger, 30)

		_, err := uc.GetByID(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrItineraryNotFound)
	})
}
