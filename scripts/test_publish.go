//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type BudgetAlertEvent struct {
	TripID     string    `json:"trip_id"`
	UserID     string    `json:"user_id,omitempty"`
	Threshold  int       `json:"threshold"`
	TotalSpent float64   `json:"total_spent"`
	Total      float64   `json:"total_budget"`
	Remaining  float64   `json:"remaining"`
	OccurredAt time.Time `json:"occurred_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "budget:alerts", "Alert stream name")
	threshold := flag.Int("threshold", 80, "Threshold to simulate (80 or 100)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие пересечения порога
	event := BudgetAlertEvent{
		TripID:     uuid.NewString(),
		Threshold:  *threshold,
		TotalSpent: 2500,
		Total:      3000,
		Remaining:  500,
		OccurredAt: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: %s\n", *stream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Trip ID: %s\n", event.TripID)
	fmt.Printf("   Threshold: %d%%\n", event.Threshold)

	// Воркер после обработки кладёт запись об оповещении в кеш
	alertKey := fmt.Sprintf("alerts:trip:%s:%d", event.TripID, event.Threshold)
	fmt.Printf("\n⏳ Waiting for worker to record %s...\n", alertKey)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for the worker (is cmd/worker running?)")
			return
		case <-ticker.C:
			val, err := client.Get(ctx, alertKey).Result()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				continue
			}

			fmt.Printf("\n✅ Alert recorded by worker!\n")
			var pretty map[string]interface{}
			if err := json.Unmarshal([]byte(val), &pretty); err == nil {
				out, _ := json.MarshalIndent(pretty, "", "  ")
				fmt.Printf("%s\n", out)
			} else {
				fmt.Println(val)
			}
			return
		}
	}
}
