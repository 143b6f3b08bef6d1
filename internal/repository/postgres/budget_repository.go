package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/domain/repository"
	"github.com/trip-planner-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type budgetRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewBudgetRepository(db *DB) repository.BudgetRepository {
	return &budgetRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type budgetRow struct {
	ID              string       `db:"id"`
	TripID          string       `db:"trip_id"`
	UserID          string       `db:"user_id"`
	TotalBudget     float64      `db:"total_budget"`
	DurationDays    int          `db:"duration_days"`
	DailyBudget     float64      `db:"daily_budget"`
	CategoryBudgets []byte       `db:"category_budgets"`
	TotalSpent      float64      `db:"total_spent"`
	Remaining       float64      `db:"remaining"`
	Alert80         bool         `db:"alert_80"`
	Alert100        bool         `db:"alert_100"`
	CreatedAt       sql.NullTime `db:"created_at"`
	UpdatedAt       sql.NullTime `db:"updated_at"`
}

// Upsert сохраняет бюджет целиком; конфликт разрешается по trip_id,
// поэтому у поездки всегда ровно один бюджет
func (r *budgetRepository) Upsert(ctx context.Context, budget *domain.Budget) error {
	categoryBudgets, err := json.Marshal(budget.CategoryBudgets)
	if err != nil {
		r.logger.Error("Failed to marshal category budgets",
			zap.String("trip_id", budget.TripID),
			zap.Error(err))
		return errors.ErrInternalServer
	}

	query := `
		INSERT INTO budgets (
			id, trip_id, user_id, total_budget, duration_days, daily_budget,
			category_budgets, total_spent, remaining, alert_80, alert_100,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (trip_id) DO UPDATE SET
			total_budget = EXCLUDED.total_budget,
			duration_days = EXCLUDED.duration_days,
			daily_budget = EXCLUDED.daily_budget,
			category_budgets = EXCLUDED.category_budgets,
			total_spent = EXCLUDED.total_spent,
			remaining = EXCLUDED.remaining,
			alert_80 = budgets.alert_80 OR EXCLUDED.alert_80,
			alert_100 = budgets.alert_100 OR EXCLUDED.alert_100,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		budget.ID,
		budget.TripID,
		budget.UserID,
		budget.TotalBudget,
		budget.DurationDays,
		budget.DailyBudget,
		categoryBudgets,
		budget.TotalSpent,
		budget.Remaining,
		budget.Alert80,
		budget.Alert100,
		budget.CreatedAt,
		budget.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert budget",
			zap.String("trip_id", budget.TripID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *budgetRepository) GetByTrip(ctx context.Context, tripID string) (*domain.Budget, error) {
	query := `
		SELECT id, trip_id, user_id, total_budget, duration_days, daily_budget,
		       category_budgets, total_spent, remaining, alert_80, alert_100,
		       created_at, updated_at
		FROM budgets
		WHERE trip_id = $1
	`

	var row budgetRow
	err := r.db.GetContext(ctx, &row, query, tripID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrBudgetNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get budget", zap.String("trip_id", tripID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	budget := &domain.Budget{
		ID:           row.ID,
		TripID:       row.TripID,
		UserID:       row.UserID,
		TotalBudget:  row.TotalBudget,
		DurationDays: row.DurationDays,
		DailyBudget:  row.DailyBudget,
		TotalSpent:   row.TotalSpent,
		Remaining:    row.Remaining,
		Alert80:      row.Alert80,
		Alert100:     row.Alert100,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}

	if len(row.CategoryBudgets) > 0 {
		if err := json.Unmarshal(row.CategoryBudgets, &budget.CategoryBudgets); err != nil {
			r.logger.Error("Failed to unmarshal category budgets",
				zap.String("trip_id", tripID),
				zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
	}

	return budget, nil
}
