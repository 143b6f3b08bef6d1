package usecase

import "github.com/trip-planner-service/internal/domain"

const expectedActivitiesPerDay = 4

// OptimizationScore вычисляет эвристическую оценку качества маршрута
// в диапазоне [0, 100]. Оценка чисто справочная: она никогда не
// используется для отклонения или повторной генерации маршрута.
//
// Штрафы применяются независимо и в фиксированном порядке:
// соответствие бюджету, плотность активностей, баланс по дням.
func OptimizationScore(it *domain.Itinerary) float64 {
	score := 100.0

	// Budget adherence
	utilization := it.BudgetUtilization()
	if utilization > 100 {
		score -= 30 // over budget
	} else if utilization < 70 {
		score -= (100 - utilization) * 0.2 // under-utilized
	}

	// Activity density
	expected := it.DurationDays * expectedActivitiesPerDay
	if expected > 0 {
		ratio := float64(it.TotalActivities()) / float64(expected)
		if ratio < 0.75 || ratio > 1.25 {
			score -= 30
		}
	}

	// Day balance, cumulative across all offending days
	for i := range it.DayPlans {
		count := it.DayPlans[i].ActivityCount()
		if count < 3 || count > 6 {
			score -= 5
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
