package repository

import (
	"context"

	"github.com/trip-planner-service/internal/domain"
)

// ExpenseRepository определяет хранилище расходов
type ExpenseRepository interface {
	// Insert сохраняет новый расход
	Insert(ctx context.Context, expense *domain.Expense) error

	// GetByID возвращает расход по идентификатору
	GetByID(ctx context.Context, id string) (*domain.Expense, error)

	// Delete удаляет расход
	Delete(ctx context.Context, id string) error

	// ListByTrip возвращает все расходы поездки, новые сверху
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Expense, error)
}

// BudgetRepository определяет хранилище бюджетов
type BudgetRepository interface {
	// Upsert сохраняет бюджет по идентификатору поездки
	Upsert(ctx context.Context, budget *domain.Budget) error

	// GetByTrip возвращает бюджет поездки
	GetByTrip(ctx context.Context, tripID string) (*domain.Budget, error)
}
