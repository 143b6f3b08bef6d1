package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/domain/repository"
	"github.com/trip-planner-service/internal/pkg/errors"
	"github.com/trip-planner-service/internal/pkg/validator"
	"github.com/trip-planner-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// tripLocks сериализует пересчёт бюджета по идентификатору поездки.
// Параллельные addExpense/deleteExpense по одной поездке читают полный
// набор расходов и перезаписывают бюджет, поэтому без блокировки
// возможна потеря обновления.
type tripLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTripLocks() *tripLocks {
	return &tripLocks{locks: make(map[string]*sync.Mutex)}
}

func (t *tripLocks) get(tripID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	if l, ok := t.locks[tripID]; ok {
		return l
	}
	l := &sync.Mutex{}
	t.locks[tripID] = l
	return l
}

// BudgetUseCase агрегирует расходы в состояние бюджета поездки
type BudgetUseCase struct {
	expenseRepo repository.ExpenseRepository
	budgetRepo  repository.BudgetRepository
	exchange    repository.ExchangeRateRepository
	streamRepo  repository.StreamRepository
	logger      *zap.Logger
	alertStream string
	locks       *tripLocks
	now         func() time.Time
}

func NewBudgetUseCase(
	expenseRepo repository.ExpenseRepository,
	budgetRepo repository.BudgetRepository,
	exchange repository.ExchangeRateRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	alertStream string,
) *BudgetUseCase {
	return &BudgetUseCase{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		exchange:    exchange,
		streamRepo:  streamRepo,
		logger:      logger,
		alertStream: alertStream,
		locks:       newTripLocks(),
		now:         time.Now,
	}
}

// CreateBudget создает или заменяет бюджет поездки
func (uc *BudgetUseCase) CreateBudget(
	ctx context.Context,
	req dto.CreateBudgetRequest,
) (*domain.Budget, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, errors.ErrValidation.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	budget := &domain.Budget{
		ID:              uuid.NewString(),
		TripID:          req.TripID,
		UserID:          req.UserID,
		CategoryBudgets: req.CategoryBudgets,
		CreatedAt:       uc.now(),
		UpdatedAt:       uc.now(),
	}
	budget.SetDurationDays(req.DurationDays)
	budget.SetTotalBudget(req.TotalBudget)

	if err := uc.budgetRepo.Upsert(ctx, budget); err != nil {
		uc.logger.Error("Failed to create budget",
			zap.String("trip_id", req.TripID),
			zap.Error(err))
		return nil, err
	}

	return budget, nil
}

// AddExpense добавляет расход и пересчитывает бюджет поездки.
// Пересчёты по одной поездке сериализуются; при ошибке записи бюджет
// остаётся в прежнем состоянии, частичный пересчёт не применяется.
func (uc *BudgetUseCase) AddExpense(
	ctx context.Context,
	req dto.AddExpenseRequest,
) (*dto.BudgetStatusResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, errors.ErrValidation.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	lock := uc.locks.get(req.TripID)
	lock.Lock()
	defer lock.Unlock()

	spentAt := req.SpentAt
	if spentAt.IsZero() {
		spentAt = uc.now()
	}

	expense := &domain.Expense{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		TripID:        req.TripID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		AmountHome:    uc.exchange.Convert(ctx, req.Amount, req.Currency),
		Category:      domain.ExpenseCategory(req.Category),
		Description:   req.Description,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		SpentAt:       spentAt,
		CreatedAt:     uc.now(),
	}

	if err := uc.expenseRepo.Insert(ctx, expense); err != nil {
		uc.logger.Error("Failed to insert expense",
			zap.String("trip_id", req.TripID),
			zap.Error(err))
		return nil, err
	}

	status, err := uc.recompute(ctx, req.TripID)
	if err != nil {
		// Keep the stores consistent: without a recomputed budget
		// the inserted expense must not survive either.
		if delErr := uc.expenseRepo.Delete(ctx, expense.ID); delErr != nil {
			uc.logger.Error("Failed to roll back expense after recompute failure",
				zap.String("expense_id", expense.ID),
				zap.Error(delErr))
		}
		return nil, err
	}

	return status, nil
}

// DeleteExpense удаляет расход и выполняет идентичный пересчёт
// по оставшимся расходам поездки
func (uc *BudgetUseCase) DeleteExpense(
	ctx context.Context,
	expenseID string,
) (*dto.BudgetStatusResponse, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	lock := uc.locks.get(expense.TripID)
	lock.Lock()
	defer lock.Unlock()

	if err := uc.expenseRepo.Delete(ctx, expenseID); err != nil {
		uc.logger.Error("Failed to delete expense",
			zap.String("expense_id", expenseID),
			zap.Error(err))
		return nil, err
	}

	return uc.recompute(ctx, expense.TripID)
}

// GetBudgetStatus возвращает текущий снимок бюджета с аналитикой
func (uc *BudgetUseCase) GetBudgetStatus(ctx context.Context, tripID string) (*dto.BudgetStatusResponse, error) {
	budget, err := uc.budgetRepo.GetByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return uc.buildStatus(budget, expenses), nil
}

// ListExpenses возвращает расходы поездки, новые сверху
func (uc *BudgetUseCase) ListExpenses(ctx context.Context, tripID string) (*dto.ExpenseListResponse, error) {
	expenses, err := uc.expenseRepo.ListByTrip(ctx, tripID)
	if err != nil {
		uc.logger.Error("Failed to list expenses",
			zap.String("trip_id", tripID),
			zap.Error(err))
		return nil, err
	}

	return &dto.ExpenseListResponse{
		Expenses: expenses,
		Total:    len(expenses),
	}, nil
}

// recompute пересчитывает totalSpent как сумму сконвертированных сумм
// всех сохранённых расходов поездки. Флаги 80%/100% взводятся при первом
// пересечении порога и никогда не сбрасываются пересчётом.
func (uc *BudgetUseCase) recompute(ctx context.Context, tripID string) (*dto.BudgetStatusResponse, error) {
	budget, err := uc.budgetRepo.GetByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var totalSpent float64
	for _, e := range expenses {
		totalSpent += e.AmountHome
	}

	wasWarned := budget.Alert80
	wasExceeded := budget.Alert100

	budget.ApplySpent(totalSpent)
	budget.UpdatedAt = uc.now()

	if err := uc.budgetRepo.Upsert(ctx, budget); err != nil {
		uc.logger.Error("Failed to persist recomputed budget",
			zap.String("trip_id", tripID),
			zap.Error(err))
		return nil, err
	}

	if !wasWarned && budget.Alert80 {
		uc.publishAlert(ctx, budget, 80)
	}
	if !wasExceeded && budget.Alert100 {
		uc.publishAlert(ctx, budget, 100)
	}

	return uc.buildStatus(budget, expenses), nil
}

// publishAlert публикует событие порога в стрим. Доставка оповещения -
// забота воркера; ошибка публикации не откатывает пересчёт.
func (uc *BudgetUseCase) publishAlert(ctx context.Context, budget *domain.Budget, threshold int) {
	event := domain.BudgetAlertEvent{
		TripID:     budget.TripID,
		UserID:     budget.UserID,
		Threshold:  threshold,
		TotalSpent: budget.TotalSpent,
		Total:      budget.TotalBudget,
		Remaining:  budget.Remaining,
		OccurredAt: uc.now(),
	}

	if err := uc.streamRepo.PublishToStream(ctx, uc.alertStream, event); err != nil {
		uc.logger.Error("Failed to publish budget alert",
			zap.String("trip_id", budget.TripID),
			zap.Int("threshold", threshold),
			zap.Error(err))
		return
	}

	uc.logger.Info("Budget alert published",
		zap.String("trip_id", budget.TripID),
		zap.Int("threshold", threshold),
		zap.Float64("total_spent", budget.TotalSpent))
}

func (uc *BudgetUseCase) buildStatus(budget *domain.Budget, expenses []*domain.Expense) *dto.BudgetStatusResponse {
	return &dto.BudgetStatusResponse{
		Budget:         budget,
		AlertState:     budget.AlertState(),
		CategoryTotals: categoryTotals(expenses),
		DailyAverage:   dailyAverage(expenses, budget.DurationDays),
		ProjectedSpend: dailyAverage(expenses, budget.DurationDays) * float64(budget.DurationDays),
		Insight:        spendingInsight(budget),
	}
}

// categoryTotals суммирует траты по категориям в домашней валюте
func categoryTotals(expenses []*domain.Expense) map[string]float64 {
	totals := make(map[string]float64, len(domain.AllExpenseCategories()))
	for _, c := range domain.AllExpenseCategories() {
		totals[string(c)] = 0
	}
	for _, e := range expenses {
		totals[string(e.Category)] += e.AmountHome
	}
	return totals
}

func dailyAverage(expenses []*domain.Expense, durationDays int) float64 {
	if durationDays == 0 {
		return 0
	}
	var total float64
	for _, e := range expenses {
		total += e.AmountHome
	}
	return total / float64(durationDays)
}

func spendingInsight(budget *domain.Budget) string {
	switch {
	case budget.Alert100:
		return "Budget exceeded. Review your expenses and adjust your plans."
	case budget.Alert80:
		return "Warning: you have spent over 80% of your budget."
	case budget.TotalBudget > 0 && budget.TotalSpent/budget.TotalBudget < 0.5:
		return "Great! You're spending less than expected. Keep it up!"
	default:
		return "You're on track with your budget. Well done!"
	}
}
