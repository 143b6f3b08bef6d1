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

type expenseRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewExpenseRepository(db *DB) repository.ExpenseRepository {
	return &expenseRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const expenseColumns = `
	id, user_id, trip_id, amount, currency, amount_home,
	category, description, payment_method, spent_at, created_at
`

func (r *expenseRepository) Insert(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (
			id, user_id, trip_id, amount, currency, amount_home,
			category, description, payment_method, spent_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID,
		expense.UserID,
		expense.TripID,
		expense.Amount,
		expense.Currency,
		expense.AmountHome,
		expense.Category,
		expense.Description,
		expense.PaymentMethod,
		expense.SpentAt,
		expense.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert expense",
			zap.String("id", expense.ID),
			zap.String("trip_id", expense.TripID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	var expense domain.Expense
	err := r.db.GetContext(ctx, &expense, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrExpenseNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get expense", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &expense, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete expense", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE trip_id = $1 ORDER BY spent_at DESC, created_at DESC`

	var expenses []*domain.Expense
	if err := r.db.SelectContext(ctx, &expenses, query, tripID); err != nil {
		r.logger.Error("Failed to list expenses",
			zap.String("trip_id", tripID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return expenses, nil
}
