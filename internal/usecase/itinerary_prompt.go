package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trip-planner-service/internal/domain"
)

// Пример выходной схемы, которую модель обязана воспроизвести
const promptOutputSchema = `{
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
          "description": "Morning visit to beautiful gardens"
        }
      ]
    }
  ]
}`

type promptPOI struct {
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Duration    int     `json:"duration"`
}

// BuildItineraryPrompt собирает один запрос генерации из ограничений
// маршрута и пула кандидатов. На одну оркестрацию - ровно один запрос.
func BuildItineraryPrompt(it *domain.Itinerary, pois []*domain.POI) (string, error) {
	candidates := make([]promptPOI, 0, len(pois))
	for _, p := range pois {
		candidates = append(candidates, promptPOI{
			Name:        p.Name,
			City:        p.City,
			Category:    p.Category,
			Description: p.Description,
			Cost:        p.Cost(),
			Duration:    p.VisitDuration(),
		})
	}

	placesJSON, err := json.Marshal(candidates)
	if err != nil {
		return "", fmt.Errorf("failed to marshal candidate places: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert Morocco travel planner. Create a detailed %d-day itinerary.\n\n",
		it.DurationDays)

	b.WriteString("USER PREFERENCES:\n")
	fmt.Fprintf(&b, "- Budget: %.0f MAD total\n", it.TotalBudget)
	fmt.Fprintf(&b, "- Starting City: %s\n", it.StartingCity)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(it.Interests, ", "))
	fmt.Fprintf(&b, "- Travel Style: %s\n\n", it.TravelStyle)

	fmt.Fprintf(&b, "AVAILABLE PLACES:\n%s\n\n", placesJSON)

	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("1. Stay within budget (distribute evenly across days)\n")
	b.WriteString("2. Include 3-5 activities per day\n")
	b.WriteString("3. Mix activity types: visits, meals, experiences\n")
	b.WriteString("4. Consider travel time between locations\n")
	b.WriteString("5. Respect opening hours and durations\n\n")

	fmt.Fprintf(&b, "OUTPUT FORMAT (JSON):\n%s\n\n", promptOutputSchema)
	b.WriteString("Generate the itinerary now:")

	return b.String(), nil
}
