package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/usecase"
)

const validGenerated = `{
  "days": [
    {
      "dayNumber": 1,
      "city": "Marrakech",
      "summary": "Explore the Red City",
      "activities": [
        {
          "type": "visit",
          "placeName": "Jardin Majorelle",
          "startTime": "09:00",
          "durationMinutes": 120,
          "cost": 70,
          "description": "Morning visit"
        },
        {
          "type": "meal",
          "placeName": "Cafe des Epices",
          "startTime": "13:00",
          "durationMinutes": 60,
          "cost": 150,
          "description": "Lunch"
        }
      ]
    },
    {
      "dayNumber": 2,
      "city": "Essaouira",
      "summary": "Coastal day trip",
      "activities": [
        {
          "type": "transport",
          "placeName": "Bus to Essaouira",
          "startTime": "08:00",
          "durationMinutes": 180,
          "cost": 80,
          "description": ""
        }
      ]
    }
  ]
}`

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"days": []}`, `{"days": []}`},
		{"json fence", "```json\n{\"days\": []}\n```", `{"days": []}`},
		{"bare fence", "```\n{\"days\": []}\n```", `{"days": []}`},
		{"fence with prose before", "Here is the plan:\n```json\n{\"days\": []}\n```", `{"days": []}`},
		{"surrounding whitespace", "  \n{\"days\": []}\n  ", `{"days": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.StripCodeFence(tt.in))
		})
	}
}

func TestParseGeneratedItinerary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	newItinerary := func() *domain.Itinerary {
		return &domain.Itinerary{
			DurationDays: 2,
			TotalBudget:  3000,
			StartingCity: "Marrakech",
		}
	}

	t.Run("fills day plans with aggregates", func(t *testing.T) {
		it := newItinerary()

		err := usecase.ParseGeneratedItinerary(validGenerated, it, now)

		require.NoError(t, err)
		require.Len(t, it.DayPlans, 2)

		day1 := it.DayPlans[0]
		assert.Equal(t, 1, day1.DayNumber)
		assert.Equal(t, "Marrakech", day1.City)
		assert.Equal(t, 220.0, day1.EstimatedCost)
		assert.Equal(t, 180, day1.TotalTravelTimeMinutes)
		assert.Equal(t, 1500.0, day1.DailyBudget)
		assert.Equal(t, domain.ActivityVisit, day1.Activities[0].Type)

		assert.Equal(t, 300.0, it.EstimatedCost)
	})

	t.Run("days get sequential dates from now", func(t *testing.T) {
		it := newItinerary()

		err := usecase.ParseGeneratedItinerary(validGenerated, it, now)

		require.NoError(t, err)
		assert.Equal(t, now, it.DayPlans[0].Date)
		assert.Equal(t, now.AddDate(0, 0, 1), it.DayPlans[1].Date)
	})

	t.Run("parses fenced response", func(t *testing.T) {
		it := newItinerary()

		err := usecase.ParseGeneratedItinerary("```json\n"+validGenerated+"\n```", it, now)

		require.NoError(t, err)
		assert.Len(t, it.DayPlans, 2)
	})

	t.Run("invalid JSON is a terminal error", func(t *testing.T) {
		it := newItinerary()

		err := usecase.ParseGeneratedItinerary("I cannot generate that itinerary.", it, now)

		require.Error(t, err)
		assert.Empty(t, it.DayPlans)
	})

	t.Run("missing days field", func(t *testing.T) {
		it := newItinerary()

		err := usecase.ParseGeneratedItinerary(`{"itinerary": []}`, it, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "days")
	})

	t.Run("missing required activity field", func(t *testing.T) {
		it := newItinerary()
		raw := `{"days":[{"dayNumber":1,"city":"Fes","activities":[{"type":"visit","placeName":"Medina","startTime":"10:00","cost":0}]}]}`

		err := usecase.ParseGeneratedItinerary(raw, it, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "durationMinutes")
		assert.Empty(t, it.DayPlans)
	})

	t.Run("unknown activity type", func(t *testing.T) {
		it := newItinerary()
		raw := `{"days":[{"dayNumber":1,"city":"Fes","activities":[{"type":"teleport","placeName":"X","startTime":"10:00","durationMinutes":30,"cost":0}]}]}`

		err := usecase.ParseGeneratedItinerary(raw, it, now)

		require.Error(t, err)
		assert.Empty(t, it.DayPlans)
	})

	t.Run("zero cost is valid, not missing", func(t *testing.T) {
		it := newItinerary()
		raw := `{"days":[{"dayNumber":1,"city":"Fes","activities":[{"type":"visit","placeName":"Medina","startTime":"10:00","durationMinutes":30,"cost":0}]}]}`

		err := usecase.ParseGeneratedItinerary(raw, it, now)

		require.NoError(t, err)
		assert.Equal(t, 0.0, it.DayPlans[0].Activities[0].Cost)
	})
}
