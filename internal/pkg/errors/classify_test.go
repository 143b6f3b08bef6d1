package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trip-planner-service/internal/pkg/errors"
)

func TestClassifyGeneration(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *errors.AppError
	}{
		{"connection refused", fmt.Errorf("dial tcp: connection refused"), errors.ErrGenerationUnavailable},
		{"unknown host", fmt.Errorf("lookup api.example.com: no such host"), errors.ErrGenerationUnavailable},
		{"quota exhausted", fmt.Errorf("googleapi: Error 429: quota exceeded"), errors.ErrGenerationRateLimited},
		{"rate limit", fmt.Errorf("rate limit reached for model"), errors.ErrGenerationRateLimited},
		{"bad api key", fmt.Errorf("API key not valid"), errors.ErrGenerationAuth},
		{"permission denied", fmt.Errorf("rpc error: code = PermissionDenied desc = permission denied"), errors.ErrGenerationAuth},
		{"deadline", fmt.Errorf("context deadline exceeded"), errors.ErrGenerationTimeout},
		{"cancel", fmt.Errorf("context canceled"), errors.ErrGenerationTimeout},
		{"missing model", fmt.Errorf("model gemini-x does not exist"), errors.ErrGenerationModelUnavailable},
		{"anything else", fmt.Errorf("candidate blocked by safety settings"), errors.ErrGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.ClassifyGeneration(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, errors.ClassifyGeneration(nil))
	})

	t.Run("app error passes through unchanged", func(t *testing.T) {
		got := errors.ClassifyGeneration(errors.ErrItineraryParse)
		assert.Equal(t, errors.ErrItineraryParse, got)
	})
}
