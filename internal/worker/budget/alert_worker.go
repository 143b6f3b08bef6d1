package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/trip-planner-service/internal/domain"
	"github.com/trip-planner-service/internal/domain/repository"
	"github.com/trip-planner-service/internal/worker"
	"go.uber.org/zap"
)

const (
	// notificationTTL - сколько запись об оповещении живёт в кеше
	notificationTTL = 30 * 24 * time.Hour
)

// BudgetAlertWorker обрабатывает события пересечения бюджетных порогов:
// логирует оповещение и сохраняет запись о нём, чтобы клиенты могли
// показать уведомление даже после переподключения
type BudgetAlertWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	cache        repository.CacheRepository
	alertStream  string
	consumerName string
	maxRetries   int
}

// NewBudgetAlertWorker создает новый BudgetAlertWorker
func NewBudgetAlertWorker(
	streamRepo repository.StreamRepository,
	cache repository.CacheRepository,
	alertStream string,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *BudgetAlertWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &BudgetAlertWorker{
		BaseWorker:   worker.NewBaseWorker("budget-alert", consumerGroup, logger),
		streamRepo:   streamRepo,
		cache:        cache,
		alertStream:  alertStream,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *BudgetAlertWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BudgetAlertWorker",
		zap.String("stream", w.alertStream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.alertStream, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, w.alertStream, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно событие с повторами.
// Битые сообщения подтверждаются сразу, чтобы не застревали в группе.
func (w *BudgetAlertWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.BudgetAlertEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse alert event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		_ = w.streamRepo.AckMessage(ctx, w.alertStream, w.ConsumerGroup(), msg.ID)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if lastErr = w.processAlert(ctx, &event); lastErr == nil {
			break
		}
		logger.Warn("Failed to process alert, retrying",
			zap.String("message_id", msg.ID),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	if lastErr != nil {
		// Сообщение остаётся pending и будет доставлено повторно
		logger.Error("Alert processing failed after retries",
			zap.String("message_id", msg.ID),
			zap.String("trip_id", event.TripID),
			zap.Error(lastErr))
		return
	}

	if err := w.streamRepo.AckMessage(ctx, w.alertStream, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
	}
}

// processAlert фиксирует оповещение: структурный лог и запись в кеше
func (w *BudgetAlertWorker) processAlert(ctx context.Context, event *domain.BudgetAlertEvent) error {
	logger := w.Logger()

	switch event.Threshold {
	case 100:
		logger.Warn("Trip budget exceeded",
			zap.String("trip_id", event.TripID),
			zap.Float64("total_spent", event.TotalSpent),
			zap.Float64("total_budget", event.Total))
	default:
		logger.Info("Trip budget warning threshold crossed",
			zap.String("trip_id", event.TripID),
			zap.Int("threshold", event.Threshold),
			zap.Float64("total_spent", event.TotalSpent),
			zap.Float64("remaining", event.Remaining))
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal alert record: %w", err)
	}

	key := fmt.Sprintf("alerts:trip:%s:%d", event.TripID, event.Threshold)
	if err := w.cache.Set(ctx, key, data, notificationTTL); err != nil {
		return fmt.Errorf("store alert record: %w", err)
	}

	return nil
}
