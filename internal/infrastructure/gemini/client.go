package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/trip-planner-service/internal/config"
	"github.com/trip-planner-service/internal/domain/repository"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Системная инструкция модели. Роль фиксирована: планировщик
// путешествий по Марокко, отвечающий строго машиночитаемым JSON.
const systemInstruction = "You are an expert Morocco travel planner. " +
	"You build realistic multi-day itineraries from a provided list of places, " +
	"respecting budgets, opening hours and travel times. " +
	"When asked for JSON you reply with JSON only, no extra commentary."

type client struct {
	genai   *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient создает новый клиент Gemini API
func NewClient(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (repository.TextGenerator, error) {
	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := gc.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(cfg.Temperature))
	model.SetTopP(float32(cfg.TopP))
	model.SetMaxOutputTokens(int32(cfg.MaxOutputTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	logger.Info("Gemini client initialized",
		zap.String("model", cfg.Model),
		zap.Float64("temperature", cfg.Temperature),
		zap.Int("max_output_tokens", cfg.MaxOutputTokens),
	)

	return &client{
		genai:   gc,
		model:   model,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}, nil
}

// GenerateContent выполняет один вызов модели и возвращает сгенерированный текст
func (c *client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Error("Gemini generation failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("generated content is not text")
	}

	c.logger.Debug("Gemini generation completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(text)))

	return string(text), nil
}

// Close закрывает соединение с Gemini API
func (c *client) Close() error {
	return c.genai.Close()
}
