package repository

import (
	"context"

	"github.com/trip-planner-service/internal/domain"
)

// POIRepository определяет доступ к каталогу точек интереса
type POIRepository interface {
	// GetByID возвращает точку по идентификатору
	GetByID(ctx context.Context, id string) (*domain.POI, error)

	// GetByCity возвращает точки города, упорядоченные по рейтингу
	GetByCity(ctx context.Context, city string, limit int) ([]*domain.POI, error)

	// GetTopRated возвращает точки с лучшим рейтингом по всем городам
	GetTopRated(ctx context.Context, limit int) ([]*domain.POI, error)
}
