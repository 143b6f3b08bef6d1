package dto

import "github.com/trip-planner-service/internal/domain"

// OptimizeRouteResponse - упорядоченная последовательность посещения
type OptimizeRouteResponse struct {
	Route   []RoutePOI `json:"route"`
	Total   int        `json:"total"`
	Skipped int        `json:"skipped"` // точки без координат
}

// POIListResponse - выдача каталога точек интереса
type POIListResponse struct {
	POIs  []*domain.POI `json:"pois"`
	Total int           `json:"total"`
}

// BudgetStatusResponse - снимок бюджета с аналитикой трат
type BudgetStatusResponse struct {
	Budget         *domain.Budget     `json:"budget"`
	AlertState     string             `json:"alert_state"`
	CategoryTotals map[string]float64 `json:"category_totals"`
	DailyAverage   float64            `json:"daily_average"`
	ProjectedSpend float64            `json:"projected_spend"`
	Insight        string             `json:"insight"`
}

// ExpenseListResponse - расходы поездки
type ExpenseListResponse struct {
	Expenses []*domain.Expense `json:"expenses"`
	Total    int               `json:"total"`
}
