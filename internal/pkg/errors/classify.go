package errors

import "strings"

// ClassifyGeneration переводит техническую ошибку генеративного сервиса
// в одну из закрытых пользовательских категорий.
// Техническое сообщение никогда не возвращается вызывающему напрямую.
func ClassifyGeneration(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection") ||
		strings.Contains(msg, "unreachable") || strings.Contains(msg, "no such host"):
		return ErrGenerationUnavailable

	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted"):
		return ErrGenerationRateLimited

	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "permission") || strings.Contains(msg, "denied"):
		return ErrGenerationAuth

	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") ||
		strings.Contains(msg, "context canceled"):
		return ErrGenerationTimeout

	case strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "model"):
		return ErrGenerationModelUnavailable

	default:
		return ErrGenerationFailed
	}
}
