package valkeystore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"translation-bleu-api/utils"

	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/valkeycompat"
	"go.uber.org/zap"
)

const (
	resultKeyPrefix = "bleu"
	resultTTL       = 24 * time.Hour
)

// ErrCacheMiss is returned when no cached result exists for a job
var ErrCacheMiss = errors.New("cache miss")

var Client valkeycompat.Cmdable
var RawClient valkey.Client

func InitValkey(logger *zap.Logger) error {
	host := utils.MustGetEnv("VALKEY_HOST")
	port := utils.MustGetEnv("VALKEY_PORT")

	var vk valkey.Client
	var err error

	if os.Getenv("VALKEY_USE_SENTINEL") == "true" {
		sentinels := parseSentinels(os.Getenv("VALKEY_SENTINEL_ADDRESS"))
		if len(sentinels) == 0 {
			return errors.New("VALKEY_USE_SENTINEL is true but VALKEY_SENTINEL_ADDRESS is not set")
		}
		masterName := utils.GetEnvOrDefault("VALKEY_SENTINEL_MASTER_NAME", "mymaster")

		logger.Info("Initializing distributed cache service with sentinel configuration")

		vk, err = valkey.NewClient(valkey.ClientOption{
			InitAddress: sentinels,
			Sentinel: valkey.SentinelOption{
				MasterSet: masterName,
			},
		})
	} else {
		logger.Info("Initializing cache service")

		vk, err = valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%s", host, port)},
		})
	}
	if err != nil {
		return fmt.Errorf("failed to create valkey client: %w", err)
	}

	RawClient = vk
	Client = valkeycompat.NewAdapter(vk)
	logger.Info("Cache service initialized successfully")
	return nil
}

// Close releases the underlying connection
func Close() {
	if RawClient != nil {
		RawClient.Close()
	}
}

func parseSentinels(csv string) []string {
	var sentinels []string
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			sentinels = append(sentinels, p)
		}
	}
	return sentinels
}

// ResultKey is the cache key of a job's result
func ResultKey(job string) string {
	return fmt.Sprintf("%s:%s", resultKeyPrefix, job)
}

// CacheResult stores the JSON encoded result of a job
func CacheResult(ctx context.Context, job, data string) error {
	return Client.Set(ctx, ResultKey(job), data, resultTTL).Err()
}

// GetCachedResult returns the cached JSON result of a job, or ErrCacheMiss
func GetCachedResult(ctx context.Context, job string) (string, error) {
	data, err := RawClient.Do(ctx, RawClient.B().Get().Key(ResultKey(job)).Build()).ToString()
	if valkey.IsValkeyNil(err) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return data, nil
}

// Publish sends message on channel
func Publish(ctx context.Context, channel, message string) error {
	return Client.Publish(ctx, channel, message).Err()
}
