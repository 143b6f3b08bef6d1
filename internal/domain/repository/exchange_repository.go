package repository

import "context"

// ExchangeRateRepository определяет сервис конвертации валют.
// При недоступности внешнего сервиса реализация обязана деградировать
// до фиксированной таблицы курсов, а не возвращать ошибку.
type ExchangeRateRepository interface {
	// Convert конвертирует сумму из указанной валюты в домашнюю валюту поездки
	Convert(ctx context.Context, amount float64, currency string) float64

	// Rates возвращает текущую таблицу курсов к домашней валюте
	Rates(ctx context.Context) map[string]float64
}
