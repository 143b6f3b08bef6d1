package domain

import "time"

// Activity представляет одно запланированное действие внутри дня
type Activity struct {
	Type            ActivityType `json:"type" db:"type"`
	PlaceID         string       `json:"place_id,omitempty" db:"place_id"`
	PlaceName       string       `json:"place_name" db:"place_name"`
	City            string       `json:"city,omitempty" db:"city"`
	StartTime       string       `json:"start_time" db:"start_time"`
	EndTime         string       `json:"end_time,omitempty" db:"end_time"`
	DurationMinutes int          `json:"duration_minutes" db:"duration_minutes"`
	Cost            float64      `json:"cost" db:"cost"`
	Currency        string       `json:"currency,omitempty" db:"currency"`
	Description     string       `json:"description,omitempty" db:"description"`
	RequiresBooking bool         `json:"requires_booking,omitempty" db:"requires_booking"`
}

// DayPlan представляет упорядоченный план одного дня поездки.
// EstimatedCost и TotalTravelTimeMinutes - вычисляемые поля, они
// пересчитываются при любом изменении списка активностей.
type DayPlan struct {
	DayNumber              int        `json:"day_number"`
	Date                   time.Time  `json:"date"`
	City                   string     `json:"city"`
	Summary                string     `json:"summary,omitempty"`
	Activities             []Activity `json:"activities"`
	DailyBudget            float64    `json:"daily_budget"`
	EstimatedCost          float64    `json:"estimated_cost"`
	TotalTravelTimeMinutes int        `json:"total_travel_time_minutes"`
}

// SetActivities заменяет список активностей и пересчитывает агрегаты
func (d *DayPlan) SetActivities(activities []Activity) {
	d.Activities = activities
	d.recompute()
}

// AddActivity добавляет активность и пересчитывает агрегаты
func (d *DayPlan) AddActivity(a Activity) {
	d.Activities = append(d.Activities, a)
	d.recompute()
}

func (d *DayPlan) recompute() {
	var cost float64
	var minutes int
	for _, a := range d.Activities {
		cost += a.Cost
		minutes += a.DurationMinutes
	}
	d.EstimatedCost = cost
	d.TotalTravelTimeMinutes = minutes
}

// ActivityCount возвращает количество активностей дня
func (d *DayPlan) ActivityCount() int {
	return len(d.Activities)
}

// Itinerary представляет многодневный план поездки.
// Ограничения (длительность, бюджет, город, интересы) фиксируются при
// создании; планы дней заполняются оркестратором ровно один раз.
type Itinerary struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	Title  string `json:"title,omitempty"`

	// Ограничения, заданные пользователем
	DurationDays int      `json:"duration_days"`
	TotalBudget  float64  `json:"total_budget"`
	StartingCity string   `json:"starting_city"`
	Interests    []string `json:"interests"`
	TravelStyle  string   `json:"travel_style,omitempty"`

	// Заполняется оркестратором
	DayPlans          []DayPlan `json:"day_plans"`
	EstimatedCost     float64   `json:"estimated_cost"`
	OptimizationScore float64   `json:"optimization_score"`
	Saved             bool      `json:"saved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttachDayPlans присоединяет сгенерированные планы дней и пересчитывает
// итоговую стоимость как сумму стоимостей по дням
func (it *Itinerary) AttachDayPlans(plans []DayPlan) {
	it.DayPlans = plans

	var total float64
	for i := range plans {
		total += plans[i].EstimatedCost
	}
	it.EstimatedCost = total
}

// TotalActivities возвращает суммарное число активностей во всех днях
func (it *Itinerary) TotalActivities() int {
	var n int
	for i := range it.DayPlans {
		n += len(it.DayPlans[i].Activities)
	}
	return n
}

// BudgetUtilization возвращает использование бюджета в процентах
func (it *Itinerary) BudgetUtilization() float64 {
	if it.TotalBudget == 0 {
		return 0
	}
	return it.EstimatedCost / it.TotalBudget * 100
}

// DailyBudget возвращает бюджет на один день
func (it *Itinerary) DailyBudget() float64 {
	if it.DurationDays == 0 {
		return 0
	}
	return it.TotalBudget / float64(it.DurationDays)
}
