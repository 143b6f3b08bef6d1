package domain

import "time"

// Пороги бюджетных оповещений
const (
	AlertThresholdWarn     = 0.80
	AlertThresholdExceeded = 1.00
)

// Expense представляет один расход в рамках поездки
type Expense struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id,omitempty" db:"user_id"`
	TripID string `json:"trip_id" db:"trip_id"`

	Amount   float64 `json:"amount" db:"amount"`
	Currency string  `json:"currency" db:"currency"`

	// Сумма, сконвертированная в домашнюю валюту поездки
	AmountHome float64 `json:"amount_home" db:"amount_home"`

	Category      ExpenseCategory `json:"category" db:"category"`
	Description   string          `json:"description,omitempty" db:"description"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty" db:"payment_method"`

	SpentAt   time.Time `json:"spent_at" db:"spent_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Budget представляет бюджет поездки и его текущее состояние.
// Флаги оповещений односторонние: однажды взведённый флаг никогда не
// сбрасывается пересчётом, даже если траты позже упали ниже порога.
type Budget struct {
	ID           string  `json:"id" db:"id"`
	TripID       string  `json:"trip_id" db:"trip_id"`
	UserID       string  `json:"user_id,omitempty" db:"user_id"`
	TotalBudget  float64 `json:"total_budget" db:"total_budget"`
	DurationDays int     `json:"duration_days" db:"duration_days"`
	DailyBudget  float64 `json:"daily_budget" db:"daily_budget"`

	// Необязательные лимиты по категориям
	CategoryBudgets map[string]float64 `json:"category_budgets,omitempty" db:"-"`

	TotalSpent float64 `json:"total_spent" db:"total_spent"`
	Remaining  float64 `json:"remaining" db:"remaining"`

	Alert80  bool `json:"alert_80" db:"alert_80"`
	Alert100 bool `json:"alert_100" db:"alert_100"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SetTotalBudget обновляет общий бюджет и пересчитывает дневной
func (b *Budget) SetTotalBudget(total float64) {
	b.TotalBudget = total
	b.recomputeDaily()
	b.ApplySpent(b.TotalSpent)
}

// SetDurationDays обновляет длительность поездки и пересчитывает дневной бюджет
func (b *Budget) SetDurationDays(days int) {
	b.DurationDays = days
	b.recomputeDaily()
}

func (b *Budget) recomputeDaily() {
	if b.DurationDays == 0 {
		b.DailyBudget = 0
		return
	}
	b.DailyBudget = b.TotalBudget / float64(b.DurationDays)
}

// ApplySpent записывает новую сумму трат, пересчитывает остаток и
// взводит пороговые флаги. Флаги никогда не сбрасываются.
func (b *Budget) ApplySpent(totalSpent float64) {
	b.TotalSpent = totalSpent
	b.Remaining = b.TotalBudget - totalSpent

	if b.TotalBudget > 0 {
		if totalSpent >= b.TotalBudget*AlertThresholdWarn {
			b.Alert80 = true
		}
		if totalSpent >= b.TotalBudget*AlertThresholdExceeded {
			b.Alert100 = true
		}
	}
}

// AlertState возвращает текущее состояние машины оповещений:
// unarmed -> warned -> exceeded
func (b *Budget) AlertState() string {
	switch {
	case b.Alert100:
		return "exceeded"
	case b.Alert80:
		return "warned"
	default:
		return "unarmed"
	}
}

// BudgetAlertEvent публикуется в стрим при первом пересечении порога
type BudgetAlertEvent struct {
	TripID     string    `json:"trip_id"`
	UserID     string    `json:"user_id,omitempty"`
	Threshold  int       `json:"threshold"`
	TotalSpent float64   `json:"total_spent"`
	Total      float64   `json:"total_budget"`
	Remaining  float64   `json:"remaining"`
	OccurredAt time.Time `json:"occurred_at"`
}
