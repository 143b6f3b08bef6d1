package usecase_test

import (
	"context"
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

const alertStream = "budget:alerts"

func newBudgetUC(
	expenseRepo *MockExpenseRepository,
	budgetRepo *MockBudgetRepository,
	exchange *MockExchangeRateRepository,
	streamRepo *MockStreamRepository,
) *usecase.BudgetUseCase {
	return usecase.NewBudgetUseCase(expenseRepo, budgetRepo, exchange, streamRepo, zap.NewNop(), alertStream)
}

func tripBudget(total float64, days int) *domain.Budget {
	b := &domain.Budget{
		ID:     "budget-1",
		TripID: "trip-1",
	}
	b.SetDurationDays(days)
	b.SetTotalBudget(total)
	return b
}

func expenseOf(id string, amountHome float64) *domain.Expense {
	return &domain.Expense{
		ID:         id,
		TripID:     "trip-1",
		Amount:     amountHome,
		Currency:   "MAD",
		AmountHome: amountHome,
		Category:   domain.ExpenseFood,
	}
}

func addExpenseRequest(amount float64) dto.AddExpenseRequest {
	return dto.AddExpenseRequest{
		TripID:   "trip-1",
		Amount:   amount,
		Currency: "MAD",
		Category: "food",
	}
}

func TestBudgetUseCase_CreateBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("computes daily budget", func(t *testing.T) {
		budgetRepo := &MockBudgetRepository{}
		budgetRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Budget")).Return(nil)

		uc := newBudgetUC(&MockExpenseRepository{}, budgetRepo, &MockExchangeRateRepository{}, &MockStreamRepository{})

		budget, err := uc.CreateBudget(ctx, dto.CreateBudgetRequest{
			TripID:       "trip-1",
			TotalBudget:  3000,
			DurationDays: 5,
		})

		require.NoError(t, err)
		assert.Equal(t, 600.0, budget.DailyBudget)
		assert.Equal(t, "unarmed", budget.AlertState())
	})

	t.Run("rejects invalid request", func(t *testing.T) {
		uc := newBudgetUC(&MockExpenseRepository{}, &MockBudgetRepository{}, &MockExchangeRateRepository{}, &MockStreamRepository{})

		_, err := uc.CreateBudget(ctx, dto.CreateBudgetRequest{TripID: "trip-1"})

		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestBudgetUseCase_AddExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("crossing 80 percent publishes one warn alert", func(t *testing.T) {
		expenseRepo := &MockExpenseRepository{}
		budgetRepo := &MockBudgetRepository{}
		exchange := &MockExchangeRateRepository{}
		streamRepo := &MockStreamRepository{}

		budget := tripBudget(3000, 5)
		budgetRepo.On("GetByTrip", mock.Anything, "trip-1").Return(budget, nil)
		budgetRepo.On("Upsert", mock.Anything, budget).Return(nil)

		exchange.On("Convert", mock.Anything, 2500.0, "MAD").Return(2500.0)
		expenseRepo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Expense")).Return(nil)
		expenseRepo.On("ListByTrip", mock.Anything, "trip-1").
			Return([]*domain.Expense{expenseOf("e1", 2500)}, nil)

		streamRepo.On("PublishToStream", mock.Anything, alertStream, mock.Anything).Return(nil)

		uc := newBudgetUC(expenseRepo, budgetRepo, exchange, streamRepo)

		status, err := uc.AddExpense(ctx, addExpenseRequest(2500))

		require.NoError(t, err)
		assert.Equal(t, "warned", status.AlertState)
		assert.True(t, budget.Alert80)
		assert.False(t, budget.Alert100)

		streamRepo.AssertNumberOfCalls(t, "PublishToStream", 1)
		event := streamRepo.Calls[0].Arguments.Get(2).(domain.BudgetAlertEvent)
		assert.Equal(t, 80, event.Threshold)
		assert.Equal(t, 2500.0, event.TotalSpent)
	})

	t.Run("crossing 100 percent publishes exceeded alert once", func(t *testing.T) {
		expenseRepo := &MockExpenseRepository{}
		budgetRepo := &MockBudgetRepository{}
		exchange := &MockExchangeRateRepository{}
		streamRepo := &MockStreamRepository{}

		budget := tripBudget(3000, 5)
		budget.ApplySpent(2500) // уже предупреждён
		require.True(t, budget.Alert80)

		budgetRepo.On("GetByTrip", mock.Anything, "trip-1").Return(budget, nil)
		budgetRepo.On("Upsert", mock.Anything, budget).Return(nil)

		exchange.On("Convert", mock.Anything, 600.0, "MAD").Return(600.0)
		expenseRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
		expenseRepo.On("ListByTrip", mock.Anything, "trip-1").
			Return([]*domain.Expense{expenseOf("e1", 2500), expenseOf("e2", 600)}, nil)

		streamRepo.On("PublishToStream", mock.Anything, alertStream, mock.Anything).Return(nil)

		uc := newBudgetUC(expenseRepo, budgetRepo, exchange, streamRepo)

		status, err := uc.AddExpense(ctx, addExpenseRequest(600))

		require.NoError(t, err)
		assert.Equal(t, "exceeded", status.AlertState)

		// Порог 80 уже был взведён, публикуется только 100
		streamRepo.AssertNumberOfCalls(t, "PublishToStream", 1)
		event := streamRepo.Calls[0].Arguments.Get(2).(domain.BudgetAlertEvent)
		assert.Equal(t, 100, event.Threshold)
	})

	t.Run("converts foreign currency before persisting", func(t *testing.T) {
		expenseRepo := &MockExpenseRepository{}
		budgetRepo := &MockBudgetRepository{}
		exchange := &MockExchangeRateRepository{}
		streamRepo := &MockStreamRepository{}

		budget := tripBudget(3000, 5)
		budgetRepo.On("GetByTrip", mock.Anything, "trip-1").Return(budget, nil)
		budgetRepo.On("Upsert", mock.Anything, budget).Return(nil)

		exchange.On("Convert", mock.Anything, 50.0, "USD").Return(500.0)
		expenseRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *domain.Expense) bool {
			return e.Amount == 50 && e.Currency == "USD" && e.AmountHome == 500
		})).Return(nil)
		expenseRepo.On("ListByTrip", mock.Anything, "trip-1").
			Return([]*domain.Expense{expenseOf("e1", 500)}, nil)

		uc := newBudgetUC(expenseRepo, budgetRepo, exchange, streamRepo)

		req := addExpenseRequest(50)
		req.Currency = "USD"

		status, err := uc.AddExpense(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 500.0, status.Budget.TotalSpent)
		assert.Equal(t, "unarmed", status.AlertState)
	})

	t.Run("recompute failure rolls back inserted expense", func(t *testing.T) {
		expenseRepo := &MockExpenseRepository{}
		budgetRepo := &MockBudgetRepository{}
		exchange := &MockExchangeRateRepository{}
		streamRepo := &MockStreamRepository{}

		budgetRepo.On("GetByTrip", mock.Anything, "trip-1").
			Return(nil, apperrors.ErrBudgetNotFound)

		exchange.On("Convert", mock.Anything, 100.0, "MAD").Return(100.0)
		expenseRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
		expenseRepo.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		uc := newBudgetUC(expenseRepo, budgetRepo, exchange, streamRepo)

		_, err := uc.AddExpense(ctx, addExpenseRequest(100))

		assert.ErrorIs(t, err, apperrors.ErrBudgetNotFound)
		expenseRepo.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("string"))
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		uc := newBudgetUC(&MockExpenseRepository{}, &MockBudgetRepository{}, &MockExchangeRateRepository{}, &MockStreamRepository{})

		req := addExpenseRequest(100)
		req.Category = "souvenirs"

		_, err := uc.AddExpense(ctx, req)

		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestBudgetUseCase_DeleteExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("alerts stay latched after spend drops below threshold", func(t *testing.T) {
		expenseRepo := &MockExpenseRepository{}
		budgetRepo := &MockBudgetRepository{}
		exchange := &MockExchangeRateRepository{}
		streamRepo := &MockStreamRepository{}

		budget := tripBudget(3000, 5)
		budget.ApplySpent(3100)
		require.True(t, budget.Alert80)
		require.True(t, budget.Alert100)

		expenseRepo.On("GetByID", mock.Anything, "e2").Return(expenseOf("e2", 600), nil)
		expenseRepo.On("Delete", mock.Anything, "e2").Return(nil)
		expenseRepo.On("ListByTrip", mock.Anything, "trip-1").
			Return([]*domain.Expense{expenseOf("e1", 2500)}, nil)

		budgetRepo.On("GetByTrip", mock.Anything, "trip-1").Return(budget, nil)
		budgetRepo.On("Upsert", mock.Anything, budget).Return(nil)

		uc := newBudgetUC(expenseRepo, budgetRepo, exchange, streamRepo)

		status, err := uc.DeleteExpense(ctx, "e2")

		require.NoError(t, err)
		assert.Equal(t, 2500.0, status.Budget.TotalSpent)
		assert.Equal(t, 500.0, status.Budget.Remaining)

		// Однажды взведённые флаги не сбрасываются
		assert.True(t, status.Budget.Alert80)
		assert.True(t, status.Budget.Alert100)
		assert.Equal(t, "exceeded", status.AlertState)

		// Повторных оповещений нет
		streamRepo.AssertNotCalled(t, "PublishToStream")
	})

	t.Run("missing expense", func(t *testing.T) {
		expenseRepo := &MockExpenseRepository{}
		expenseRepo.On("GetByID", mock.Anything, "missing").
			Return(nil, apperrors.ErrExpenseNotFound)

		uc := newBudgetUC(expenseRepo, &MockBudgetRepository{}, &MockExchangeRateRepository{}, &MockStreamRepository{})

		_, err := uc.DeleteExpense(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrExpenseNotFound)
	})
}

func TestBudgetUseCase_GetBudgetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("includes category totals and insight", func(t *testing.T) {
		expenseRepo := &MockExpenseRepository{}
		budgetRepo := &MockBudgetRepository{}

		budget := tripBudget(3000, 5)
		budget.ApplySpent(1000)

		transport := expenseOf("e2", 300)
		transport.Category = domain.ExpenseTransport

		budgetRepo.On("GetByTrip", mock.Anything, "trip-1").Return(budget, nil)
		expenseRepo.On("ListByTrip", mock.Anything, "trip-1").
			Return([]*domain.Expense{expenseOf("e1", 700), transport}, nil)

		uc := newBudgetUC(expenseRepo, budgetRepo, &MockExchangeRateRepository{}, &MockStreamRepository{})

		status, err := uc.GetBudgetStatus(ctx, "trip-1")

		require.NoError(t, err)
		assert.Equal(t, 700.0, status.CategoryTotals["food"])
		assert.Equal(t, 300.0, status.CategoryTotals["transport"])
		assert.Equal(t, 0.0, status.CategoryTotals["shopping"])
		assert.Equal(t, 200.0, status.DailyAverage)
		assert.NotEmpty(t, status.Insight)
	})

	t.Run("missing budget", func(t *testing.T) {
		budgetRepo := &MockBudgetRepository{}
		budgetRepo.On("GetByTrip", mock.Anything, "trip-1").
			Return(nil, apperrors.ErrBudgetNotFound)

		uc := newBudgetUC(&MockExpenseRepository{}, budgetRepo, &MockExchangeRateRepository{}, &MockStreamRepository{})

		_, err := uc.GetBudgetStatus(ctx, "trip-1")

		assert.ErrorIs(t, err, apperrors.ErrBudgetNotFound)
	})
}
