package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/domain/repository"
	"github.com/trip-planner-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type poiRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPOIRepository(db *DB) repository.POIRepository {
	return &poiRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const poiColumns = `
	id, name, city, category, description, lat, lon,
	ticket_cost, visit_duration_minutes, rating,
	opening_hours, address, image_url, created_at, updated_at
`

func (r *poiRepository) GetByID(ctx context.Context, id string) (*domain.POI, error) {
	query := `SELECT ` + poiColumns + ` FROM pois WHERE id = $1`

	var poi domain.POI
	err := r.db.GetContext(ctx, &poi, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPOINotFound
	}
	if err != nil {
		r.logger.Error("Failed to get POI by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &poi, nil
}

func (r *poiRepository) GetByCity(ctx context.Context, city string, limit int) ([]*domain.POI, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE LOWER(city) = LOWER($1)
		ORDER BY rating DESC NULLS LAST, name
		LIMIT $2
	`

	var pois []*domain.POI
	if err := r.db.SelectContext(ctx, &pois, query, city, limit); err != nil {
		r.logger.Error("Failed to get POIs by city", zap.String("city", city), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return pois, nil
}

func (r *poiRepository) GetTopRated(ctx context.Context, limit int) ([]*domain.POI, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE rating IS NOT NULL
		ORDER BY rating DESC, name
		LIMIT $1
	`

	var pois []*domain.POI
	if err := r.db.SelectContext(ctx, &pois, query, limit); err != nil {
		r.logger.Error("Failed to get top rated POIs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return pois, nil
}
