package recipe

import (
	"context"
	"encoding/json"
	"time"

	"smartplates/models"
	"smartplates/utils"

	"github.com/go-redis/redis/v8"
)

// Read-through cache for recipe documents. Misses and Redis failures fall
// back to the repository silently.

func getCachedRecipe(id string) *models.Recipe {
	client := utils.GetCacheClient()
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	data, err := client.Get(ctx, utils.RecipeCachePrefix+id).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Sugar().Debugf("recipe cache read failed: %v", err)
		}
		return nil
	}
	var rec models.Recipe
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil
	}
	return &rec
}

func cacheRecipe(rec *models.Recipe) {
	client := utils.GetCacheClient()
	if client == nil {
		return
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = client.Set(ctx, utils.RecipeCachePrefix+rec.ID, b, utils.RecipeCacheTTL).Err()
}

func dropCachedRecipe(id string) {
	client := utils.GetCacheClient()
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = client.Del(ctx, utils.RecipeCachePrefix+id).Err()
}
