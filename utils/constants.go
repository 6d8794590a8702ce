// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// RecipeCachePrefix is the prefix for cached recipe documents.
const RecipeCachePrefix = "recipe:"

// RecipeCacheTTL is the time-to-live for cached recipe documents.
const RecipeCacheTTL = 10 * time.Minute

// IngredientCachePrefix is the prefix for cached ingredient-recognition
// results, keyed by image hash.
const IngredientCachePrefix = "ingredients:"

// IngredientCacheTTL is the time-to-live for recognition results.
const IngredientCacheTTL = 24 * time.Hour
