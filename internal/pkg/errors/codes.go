package errors

import "net/http"

var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrPOINotFound = New(
		"POI_NOT_FOUND",
		"Point of interest not found",
		http.StatusNotFound,
	)

	ErrItineraryNotFound = New(
		"ITINERARY_NOT_FOUND",
		"Itinerary not found",
		http.StatusNotFound,
	)

	ErrBudgetNotFound = New(
		"BUDGET_NOT_FOUND",
		"Budget not found for this trip",
		http.StatusNotFound,
	)

	ErrExpenseNotFound = New(
		"EXPENSE_NOT_FOUND",
		"Expense not found",
		http.StatusNotFound,
	)

	ErrItineraryParse = New(
		"PARSE_ERROR",
		"Generated itinerary could not be parsed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// Ошибки генеративного сервиса, сгруппированные по категориям для пользователя
var (
	ErrGenerationUnavailable = New(
		"GENERATION_UNAVAILABLE",
		"Trouble connecting to the AI service. Please check your connection and try again.",
		http.StatusServiceUnavailable,
	)

	ErrGenerationRateLimited = New(
		"GENERATION_RATE_LIMITED",
		"The AI service is receiving too many requests. Please wait a moment and try again.",
		http.StatusTooManyRequests,
	)

	ErrGenerationAuth = New(
		"GENERATION_AUTH",
		"Authentication with the AI service failed. Please contact support.",
		http.StatusBadGateway,
	)

	ErrGenerationTimeout = New(
		"GENERATION_TIMEOUT",
		"The AI request timed out. Please try again.",
		http.StatusGatewayTimeout,
	)

	ErrGenerationModelUnavailable = New(
		"GENERATION_MODEL_UNAVAILABLE",
		"The AI model is unreachable right now. Please try again shortly.",
		http.StatusBadGateway,
	)

	ErrGenerationFailed = New(
		"GENERATION_FAILED",
		"Itinerary generation failed. Please try again or adjust your preferences.",
		http.StatusBadGateway,
	)
)
