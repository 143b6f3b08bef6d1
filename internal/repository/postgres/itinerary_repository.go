package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/domain/repository"
	"github.com/trip-planner-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type itineraryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewItineraryRepository(db *DB) repository.ItineraryRepository {
	return &itineraryRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Планы дней хранятся как JSONB: документ целиком читается и
// перезаписывается вместе с маршрутом
type itineraryRow struct {
	ID                string         `db:"id"`
	UserID            sql.NullString `db:"user_id"`
	Title             sql.NullString `db:"title"`
	DurationDays      int            `db:"duration_days"`
	TotalBudget       float64        `db:"total_budget"`
	StartingCity      string         `db:"starting_city"`
	Interests         pq.StringArray `db:"interests"`
	TravelStyle       sql.NullString `db:"travel_style"`
	DayPlans          []byte         `db:"day_plans"`
	EstimatedCost     float64        `db:"estimated_cost"`
	OptimizationScore float64        `db:"optimization_score"`
	Saved             bool           `db:"saved"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (r *itineraryRepository) Upsert(ctx context.Context, itinerary *domain.Itinerary) error {
	dayPlans, err := json.Marshal(itinerary.DayPlans)
	if err != nil {
		r.logger.Error("Failed to marshal day plans",
			zap.String("id", itinerary.ID),
			zap.Error(err))
		return errors.ErrInternalServer
	}

	query := `
		INSERT INTO itineraries (
			id, user_id, title, duration_days, total_budget, starting_city,
			interests, travel_style, day_plans, estimated_cost,
			optimization_score, saved, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			day_plans = EXCLUDED.day_plans,
			estimated_cost = EXCLUDED.estimated_cost,
			optimization_score = EXCLUDED.optimization_score,
			saved = EXCLUDED.saved,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		itinerary.ID,
		itinerary.UserID,
		itinerary.Title,
		itinerary.DurationDays,
		itinerary.TotalBudget,
		itinerary.StartingCity,
		pq.Array(itinerary.Interests),
		itinerary.TravelStyle,
		dayPlans,
		itinerary.EstimatedCost,
		itinerary.OptimizationScore,
		itinerary.Saved,
		itinerary.CreatedAt,
		itinerary.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert itinerary",
			zap.String("id", itinerary.ID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *itineraryRepository) GetByID(ctx context.Context, id string) (*domain.Itinerary, error) {
	query := `
		SELECT id, user_id, title, duration_days, total_budget, starting_city,
		       interests, travel_style, day_plans, estimated_cost,
		       optimization_score, saved, created_at, updated_at
		FROM itineraries
		WHERE id = $1
	`

	var row itineraryRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrItineraryNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get itinerary", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return r.toDomain(&row)
}

func (r *itineraryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Itinerary, error) {
	query := `
		SELECT id, user_id, title, duration_days, total_budget, starting_city,
		       interests, travel_style, day_plans, estimated_cost,
		       optimization_score, saved, created_at, updated_at
		FROM itineraries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var rows []itineraryRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		r.logger.Error("Failed to list itineraries",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	itineraries := make([]*domain.Itinerary, 0, len(rows))
	for i := range rows {
		itinerary, err := r.toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, itinerary)
	}

	return itineraries, nil
}

func (r *itineraryRepository) toDomain(row *itineraryRow) (*domain.Itinerary, error) {
	itinerary := &domain.Itinerary{
		ID:                row.ID,
		UserID:            row.UserID.String,
		Title:             row.Title.String,
		DurationDays:      row.DurationDays,
		TotalBudget:       row.TotalBudget,
		StartingCity:      row.StartingCity,
		Interests:         row.Interests,
		TravelStyle:       row.TravelStyle.String,
		EstimatedCost:     row.EstimatedCost,
		OptimizationScore: row.OptimizationScore,
		Saved:             row.Saved,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}

	if len(row.DayPlans) > 0 {
		if err := json.Unmarshal(row.DayPlans, &itinerary.DayPlans); err != nil {
			r.logger.Error("Failed to unmarshal day plans",
				zap.String("id", row.ID),
				zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
	}

	return itinerary, nil
}
