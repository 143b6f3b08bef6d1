package domain

import "time"

// Длительность посещения по умолчанию, если каталог её не знает
const DefaultVisitDurationMinutes = 60

// POI представляет точку интереса из каталога мест
type POI struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	City        string   `json:"city" db:"city"`
	Category    string   `json:"category" db:"category"`
	Description string   `json:"description" db:"description"`
	Lat         *float64 `json:"lat,omitempty" db:"lat"`
	Lon         *float64 `json:"lon,omitempty" db:"lon"`

	// nil означает бесплатный вход
	TicketCost *float64 `json:"ticket_cost,omitempty" db:"ticket_cost"`

	VisitDurationMinutes *int     `json:"visit_duration_minutes,omitempty" db:"visit_duration_minutes"`
	Rating               *float64 `json:"rating,omitempty" db:"rating"`

	OpeningHours *string `json:"opening_hours,omitempty" db:"opening_hours"`
	Address      *string `json:"address,omitempty" db:"address"`
	ImageURL     *string `json:"image_url,omitempty" db:"image_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasLocation сообщает, известны ли координаты точки.
// Точки без координат исключаются из построения маршрута.
func (p *POI) HasLocation() bool {
	return p.Lat != nil && p.Lon != nil
}

// Location возвращает координаты или nil, если точка нелокализуема
func (p *POI) Location() *Coordinate {
	if !p.HasLocation() {
		return nil
	}
	return &Coordinate{Lat: *p.Lat, Lon: *p.Lon}
}

// Cost возвращает стоимость билета (0 для бесплатных мест)
func (p *POI) Cost() float64 {
	if p.TicketCost == nil {
		return 0
	}
	return *p.TicketCost
}

// VisitDuration возвращает оценку длительности посещения в минутах
func (p *POI) VisitDuration() int {
	if p.VisitDurationMinutes == nil {
		return DefaultVisitDurationMinutes
	}
	return *p.VisitDurationMinutes
}
