package dto

import "time"

// GenerateItineraryRequest - запрос на генерацию маршрута
type GenerateItineraryRequest struct {
	UserID       string   `json:"user_id,omitempty"`
	DurationDays int      `json:"duration_days" validate:"required,min=1,max=30"`
	TotalBudget  float64  `json:"total_budget" validate:"required,gt=0"`
	StartingCity string   `json:"starting_city" validate:"required,min=2"`
	Interests    []string `json:"interests" validate:"required,min=1,dive,required"`
	TravelStyle  string   `json:"travel_style" validate:"omitempty,oneof=budget comfort luxury"`

	// Сколько кандидатов каталога отдать модели (0 - значение из конфигурации)
	CandidateLimit int `json:"candidate_limit" validate:"omitempty,min=1,max=100"`
}

// OptimizeRouteRequest - запрос на построение порядка посещения точек
type OptimizeRouteRequest struct {
	StartLat float64    `json:"start_lat" validate:"min=-90,max=90"`
	StartLon float64    `json:"start_lon" validate:"min=-180,max=180"`
	POIs     []RoutePOI `json:"pois" validate:"required,dive"`
}

// RoutePOI - точка для построения маршрута.
// Точки без координат исключаются из результата.
type RoutePOI struct {
	ID   string   `json:"id,omitempty"`
	Name string   `json:"name" validate:"required"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// AddExpenseRequest - запрос на добавление расхода
type AddExpenseRequest struct {
	TripID        string    `json:"trip_id" validate:"required"`
	UserID        string    `json:"user_id,omitempty"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	Currency      string    `json:"currency" validate:"required,len=3"`
	Category      string    `json:"category" validate:"required,oneof=food transport accommodation activities shopping other"`
	Description   string    `json:"description,omitempty" validate:"omitempty,max=500"`
	PaymentMethod string    `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card mobile"`
	SpentAt       time.Time `json:"spent_at,omitempty"`
}

// CreateBudgetRequest - запрос на создание бюджета поездки
type CreateBudgetRequest struct {
	TripID          string             `json:"trip_id" validate:"required"`
	UserID          string             `json:"user_id,omitempty"`
	TotalBudget     float64            `json:"total_budget" validate:"required,gt=0"`
	DurationDays    int                `json:"duration_days" validate:"required,min=1,max=90"`
	CategoryBudgets map[string]float64 `json:"category_budgets,omitempty"`
}
