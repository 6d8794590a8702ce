package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"smartplates/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ingredientDetector is the model boundary, mockable in tests.
type ingredientDetector interface {
	DetectIngredients(ctx context.Context, imageData []byte, format string) ([]string, error)
}

// DefaultAIService recognizes ingredients via Gemini, caching results in
// Redis by image hash so re-uploads of the same photo skip the model call.
type DefaultAIService struct {
	detector ingredientDetector
	cache    *redis.Client
	ttl      time.Duration
}

// NewDefaultAIService wires a Gemini-backed recognizer with a Redis cache.
func NewDefaultAIService(apiKey string, cache *redis.Client) *DefaultAIService {
	return &DefaultAIService{
		detector: NewGeminiClient(apiKey),
		cache:    cache,
		ttl:      utils.IngredientCacheTTL,
	}
}

// RecognizeIngredients returns ingredient names detected in the image.
func (s *DefaultAIService) RecognizeIngredients(ctx context.Context, imageData []byte, format string) ([]string, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	sum := sha256.Sum256(imageData)
	cacheKey := utils.IngredientCachePrefix + hex.EncodeToString(sum[:])

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var names []string
			if json.Unmarshal([]byte(data), &names) == nil {
				return names, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Debug("ingredient cache read failed", zap.Error(err))
		}
	}

	names, err := s.detector.DetectIngredients(ctx, imageData, format)
	if err != nil {
		return nil, fmt.Errorf("ingredient recognition failed: %w", err)
	}

	if s.cache != nil {
		if b, err := json.Marshal(names); err == nil {
			_ = s.cache.Set(ctx, cacheKey, b, s.ttl).Err()
		}
	}
	return names, nil
}
