package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/domain/repository"
	"github.com/trip-planner-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// POIUseCase отдаёт каталог точек интереса
type POIUseCase struct {
	poiRepo  repository.POIRepository
	cache    repository.CacheRepository
	logger   *zap.Logger
	cacheTTL time.Duration
}

func NewPOIUseCase(
	poiRepo repository.POIRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *POIUseCase {
	return &POIUseCase{
		poiRepo:  poiRepo,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// ListByCity возвращает точки города, лучшие по рейтингу сверху
func (uc *POIUseCase) ListByCity(ctx context.Context, city string, limit int) (*dto.POIListResponse, error) {
	if limit == 0 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("pois:city:%s:%d", city, limit)
	if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.POIListResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	var (
		pois []*domain.POI
		err  error
	)
	if city == "" {
		pois, err = uc.poiRepo.GetTopRated(ctx, limit)
	} else {
		pois, err = uc.poiRepo.GetByCity(ctx, city, limit)
	}
	if err != nil {
		uc.logger.Error("Failed to query POI catalog",
			zap.String("city", city),
			zap.Error(err))
		return nil, err
	}

	resp := &dto.POIListResponse{
		POIs:  pois,
		Total: len(pois),
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cache.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache POI catalog", zap.Error(err))
		}
	}

	return resp, nil
}

// GetByID возвращает одну точку каталога
func (uc *POIUseCase) GetByID(ctx context.Context, id string) (*domain.POI, error) {
	poi, err := uc.poiRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get POI", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return poi, nil
}
