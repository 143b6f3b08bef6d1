package repository

import (
	"context"

	"github.com/trip-planner-service/internal/domain"
)

// ItineraryRepository определяет хранилище маршрутов
type ItineraryRepository interface {
	// Upsert сохраняет маршрут по идентификатору
	Upsert(ctx context.Context, itinerary *domain.Itinerary) error

	// GetByID возвращает маршрут по идентификатору
	GetByID(ctx context.Context, id string) (*domain.Itinerary, error)

	// ListByUser возвращает маршруты пользователя, новые сверху
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Itinerary, error)
}
