package usecase

import (
	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/pkg/errors"
	"github.com/trip-planner-service/internal/pkg/utils"
	"github.com/trip-planner-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteUseCase строит порядок посещения точек
type RouteUseCase struct {
	logger *zap.Logger
}

func NewRouteUseCase(logger *zap.Logger) *RouteUseCase {
	return &RouteUseCase{logger: logger}
}

// OptimizeRoute - жадный ближайший сосед от стартовой координаты.
// Результат - перестановка тех входных точек, у которых есть координаты;
// точки без координат молча исключаются. При равных расстояниях побеждает
// более ранняя точка входного списка. Сложность O(n^2), приемлемо для
// нескольких десятков кандидатов.
func OptimizeRoute(pois []domain.POI, startLat, startLon float64) []domain.POI {
	if len(pois) == 0 {
		return []domain.POI{}
	}

	remaining := make([]domain.POI, 0, len(pois))
	for _, p := range pois {
		if p.HasLocation() {
			remaining = append(remaining, p)
		}
	}

	route := make([]domain.POI, 0, len(remaining))
	current := domain.Coordinate{Lat: startLat, Lon: startLon}

	for len(remaining) > 0 {
		nearestIdx := -1
		nearestDistance := 0.0

		for i := range remaining {
			loc := remaining[i].Location()
			distance := utils.HaversineDistance(current.Lat, current.Lon, loc.Lat, loc.Lon)
			// strict < keeps the first-seen POI on equal distances
			if nearestIdx == -1 || distance < nearestDistance {
				nearestIdx = i
				nearestDistance = distance
			}
		}

		nearest := remaining[nearestIdx]
		route = append(route, nearest)
		remaining = append(remaining[:nearestIdx], remaining[nearestIdx+1:]...)

		current = *nearest.Location()
	}

	return route
}

// Optimize обрабатывает запрос на построение маршрута
func (uc *RouteUseCase) Optimize(req dto.OptimizeRouteRequest) (*dto.OptimizeRouteResponse, error) {
	if !utils.ValidateCoordinates(req.StartLat, req.StartLon) {
		return nil, errors.ErrInvalidCoordinates
	}

	pois := make([]domain.POI, 0, len(req.POIs))
	for _, p := range req.POIs {
		pois = append(pois, domain.POI{
			ID:   p.ID,
			Name: p.Name,
			Lat:  p.Lat,
			Lon:  p.Lon,
		})
	}

	route := OptimizeRoute(pois, req.StartLat, req.StartLon)

	result := make([]dto.RoutePOI, 0, len(route))
	for _, p := range route {
		result = append(result, dto.RoutePOI{
			ID:   p.ID,
			Name: p.Name,
			Lat:  p.Lat,
			Lon:  p.Lon,
		})
	}

	uc.logger.Debug("Route optimized",
		zap.Int("input", len(req.POIs)),
		zap.Int("sequenced", len(result)))

	return &dto.OptimizeRouteResponse{
		Route:   result,
		Total:   len(result),
		Skipped: len(req.POIs) - len(result),
	}, nil
}
