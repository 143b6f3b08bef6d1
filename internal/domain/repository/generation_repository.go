package repository

import "context"

// TextGenerator определяет генеративный текстовый сервис.
// Реализация выполняет ровно один исходящий вызов на обращение
// и возвращает либо сгенерированный текст, либо ошибку.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Close() error
}
