package services

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2/bson"

	mongo_client "zakatbackend/clients/mongo"
	"zakatbackend/types"
	"zakatbackend/utils/constants"
)

// The cache holds whole valuation responses keyed by request fingerprint.
// Only service output is cached; user inputs are never persisted. Every
// function here degrades to a no-op when mongo is not configured.

func cacheCollection() string {
	collection := os.Getenv("CACHE_COLLECTION")
	if collection == "" {
		collection = "valuation_cache"
	}
	return collection
}

// CacheLookup returns a cached response younger than the TTL, or nil.
func CacheLookup(ctx context.Context, requestID string) *types.ValuationResponse {
	if mongo_client.Client == nil {
		return nil
	}
	collection := mongo_client.Client.Database(os.Getenv("DATABASE")).Collection(cacheCollection())

	var result bson.M
	cutoff := time.Now().Add(-constants.CacheTTL)
	err := collection.FindOne(ctx, bson.M{"_id": requestID, "created_at": bson.M{"$gt": cutoff}}).Decode(&result)
	if err != nil {
		return nil
	}

	payload, ok := result["response"].(string)
	if !ok {
		return nil
	}
	var response types.ValuationResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		zap.L().Error("Error decoding cached valuation response", zap.String("requestId", requestID), zap.Error(err))
		return nil
	}
	return &response
}

// CacheStore saves a response under its request fingerprint. Failures only
// log; caching is best effort.
func CacheStore(ctx context.Context, requestID string, response *types.ValuationResponse) {
	if mongo_client.Client == nil {
		return
	}
	payload, err := json.Marshal(response)
	if err != nil {
		zap.L().Error("Error encoding valuation response for cache", zap.Error(err))
		return
	}

	collection := mongo_client.Client.Database(os.Getenv("DATABASE")).Collection(cacheCollection())
	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": requestID},
		bson.M{"$set": bson.M{"response": string(payload), "created_at": time.Now()}},
		// Upsert so a refreshed valuation replaces the stale document.
		options.Update().SetUpsert(true))
	if err != nil {
		zap.L().Error("Error caching valuation response", zap.String("requestId", requestID), zap.Error(err))
	}
}

// PruneCache deletes cache documents older than the TTL.
func PruneCache(ctx context.Context) {
	if mongo_client.Client == nil {
		return
	}
	collection := mongo_client.Client.Database(os.Getenv("DATABASE")).Collection(cacheCollection())
	cutoff := time.Now().Add(-constants.CacheTTL)
	result, err := collection.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		zap.L().Error("Error pruning valuation cache", zap.Error(err))
		return
	}
	if result.DeletedCount > 0 {
		zap.L().Info("Pruned valuation cache", zap.Int64("deleted", result.DeletedCount))
	}
}

// ClearCache drops the cache collection entirely.
func ClearCache(ctx context.Context) error {
	if mongo_client.Client == nil {
		return nil
	}
	return mongo_client.Client.Database(os.Getenv("DATABASE")).Collection(cacheCollection()).Drop(ctx)
}
