package domain

// Coordinate представляет географическую точку
type Coordinate struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// StreamMessage представляет сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
