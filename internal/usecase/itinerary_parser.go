package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/trip-planner-service/internal/domain"
)

// StripCodeFence убирает одну внешнюю markdown-ограду (с языковым тегом
// или без) вокруг сгенерированного текста. Это документированный шаг
// нормализации перед разбором, а не восстановление после ошибки.
func StripCodeFence(raw string) string {
	s := raw
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.LastIndex(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	return strings.TrimSpace(s)
}

// Указатели отличают отсутствующее обязательное поле от нулевого значения
type generatedItinerary struct {
	Days *[]generatedDay `json:"days"`
}

type generatedDay struct {
	DayNumber  *int                 `json:"dayNumber"`
	City       *string              `json:"city"`
	Summary    string               `json:"summary"`
	Activities *[]generatedActivity `json:"activities"`
}

type generatedActivity struct {
	Type            *string  `json:"type"`
	PlaceName       *string  `json:"placeName"`
	StartTime       *string  `json:"startTime"`
	DurationMinutes *int     `json:"durationMinutes"`
	Cost            *float64 `json:"cost"`
	Description     string   `json:"description"`
}

// ParseGeneratedItinerary разбирает сырой ответ модели и заполняет планы
// дней маршрута. Любое отсутствующее обязательное поле - терминальная
// ошибка разбора: частичный результат никогда не возвращается.
// Даты не берутся из сгенерированного текста: дни получают
// последовательные календарные даты, начиная с now.
func ParseGeneratedItinerary(raw string, it *domain.Itinerary, now time.Time) error {
	jsonStr := StripCodeFence(raw)

	var parsed generatedItinerary
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if parsed.Days == nil {
		return fmt.Errorf("missing required field %q", "days")
	}

	dailyBudget := it.DailyBudget()
	plans := make([]domain.DayPlan, 0, len(*parsed.Days))

	for i, day := range *parsed.Days {
		switch {
		case day.DayNumber == nil:
			return fmt.Errorf("day %d: missing required field %q", i, "dayNumber")
		case day.City == nil:
			return fmt.Errorf("day %d: missing required field %q", i, "city")
		case day.Activities == nil:
			return fmt.Errorf("day %d: missing required field %q", i, "activities")
		}

		plan := domain.DayPlan{
			DayNumber:   *day.DayNumber,
			Date:        now.AddDate(0, 0, i),
			City:        *day.City,
			Summary:     day.Summary,
			DailyBudget: dailyBudget,
		}

		activities := make([]domain.Activity, 0, len(*day.Activities))
		for j, act := range *day.Activities {
			switch {
			case act.Type == nil:
				return fmt.Errorf("day %d activity %d: missing required field %q", i, j, "type")
			case act.PlaceName == nil:
				return fmt.Errorf("day %d activity %d: missing required field %q", i, j, "placeName")
			case act.StartTime == nil:
				return fmt.Errorf("day %d activity %d: missing required field %q", i, j, "startTime")
			case act.DurationMinutes == nil:
				return fmt.Errorf("day %d activity %d: missing required field %q", i, j, "durationMinutes")
			case act.Cost == nil:
				return fmt.Errorf("day %d activity %d: missing required field %q", i, j, "cost")
			}

			activityType, err := domain.ParseActivityType(*act.Type)
			if err != nil {
				return fmt.Errorf("day %d activity %d: %w", i, j, err)
			}

			activities = append(activities, domain.Activity{
				Type:            activityType,
				PlaceName:       *act.PlaceName,
				City:            *day.City,
				StartTime:       *act.StartTime,
				DurationMinutes: *act.DurationMinutes,
				Cost:            *act.Cost,
				Description:     act.Description,
			})
		}

		plan.SetActivities(activities)
		plans = append(plans, plan)
	}

	it.AttachDayPlans(plans)
	return nil
}
