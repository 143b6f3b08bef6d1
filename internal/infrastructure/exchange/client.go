package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trip-planner-service/internal/config"
	"github.com/trip-planner-service/internal/domain/repository"
	"go.uber.org/zap"
)

const ratesCacheKey = "exchange:rates"

// Фиксированные курсы к MAD на случай недоступности внешнего API
var fallbackRates = map[string]float64{
	"MAD": 1.0,
	"USD": 10.0, // 1 USD = 10 MAD
	"EUR": 11.0, // 1 EUR = 11 MAD
	"GBP": 13.0, // 1 GBP = 13 MAD
}

type client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	homeCurrency string
	cache        repository.CacheRepository
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewClient создает клиент сервиса курсов валют.
// При любой ошибке внешнего API клиент возвращает фиксированные курсы.
func NewClient(
	cfg *config.ExchangeConfig,
	homeCurrency string,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) repository.ExchangeRateRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		homeCurrency: homeCurrency,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Convert конвертирует сумму в домашнюю валюту поездки
func (c *client) Convert(ctx context.Context, amount float64, currency string) float64 {
	if currency == "" || currency == c.homeCurrency {
		return amount
	}

	rates := c.Rates(ctx)
	rate, ok := rates[currency]
	if !ok {
		c.logger.Warn("Unknown currency, converting 1:1",
			zap.String("currency", currency))
		return amount
	}

	return amount * rate
}

// Rates возвращает таблицу курсов к домашней валюте
func (c *client) Rates(ctx context.Context) map[string]float64 {
	// Check cache first
	if cached, err := c.cache.Get(ctx, ratesCacheKey); err == nil && cached != nil {
		var rates map[string]float64
		if err := json.Unmarshal(cached, &rates); err == nil {
			return rates
		}
	}

	// API key not configured - fixed rates only
	if c.apiKey == "" {
		return fallbackRates
	}

	rates, err := c.fetchRates(ctx)
	if err != nil {
		c.logger.Warn("Failed to fetch live exchange rates, using fallback table",
			zap.Error(err))
		return fallbackRates
	}

	if data, err := json.Marshal(rates); err == nil {
		if err := c.cache.Set(ctx, ratesCacheKey, data, c.cacheTTL); err != nil {
			c.logger.Warn("Failed to cache exchange rates", zap.Error(err))
		}
	}

	return rates
}

func (c *client) fetchRates(ctx context.Context) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, c.homeCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var payload struct {
		Result          string             `json:"result"`
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("exchange rate API request failed: %s", payload.Result)
	}

	// API возвращает курсы ИЗ домашней валюты, нам нужны курсы К ней
	rates := map[string]float64{c.homeCurrency: 1.0}
	for code, rate := range payload.ConversionRates {
		if rate > 0 {
			rates[code] = 1.0 / rate
		}
	}

	c.logger.Debug("Exchange rates updated",
		zap.Int("currencies", len(rates)))

	return rates, nil
}
