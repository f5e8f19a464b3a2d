package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"IntradaySentinel/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultRedisKey is the hash that holds the latest batch, one field per symbol.
const DefaultRedisKey = "sentinel:latest"

// RedisRecorder publishes the latest batch as a Redis hash of JSON snapshots.
type RedisRecorder struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisRecorder connects to Redis and verifies the connection.
func NewRedisRecorder(ctx context.Context, addr, password string, db int, key string, logger *zap.Logger) (*RedisRecorder, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if key == "" {
		key = DefaultRedisKey
	}
	logger.Info("redis recorder connected", zap.String("addr", addr), zap.String("key", key))
	return &RedisRecorder{client: client, key: key, logger: logger}, nil
}

func (r *RedisRecorder) Name() string { return "redis" }

// RecordBatch replaces the hash atomically so readers never see a mixed batch.
func (r *RedisRecorder) RecordBatch(ctx context.Context, batch model.Batch) error {
	if len(batch) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(batch))
	for _, s := range batch {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", s.Symbol, err)
		}
		fields[s.Symbol] = data
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		pipe.HSet(ctx, r.key, fields)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

// Load returns the stored batch ordered by symbol.
func (r *RedisRecorder) Load(ctx context.Context) (model.Batch, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	batch := make(model.Batch, 0, len(fields))
	for symbol, raw := range fields {
		var s model.IndicatorSnapshot
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", symbol, err)
		}
		batch = append(batch, s)
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Symbol < batch[j].Symbol })
	return batch, nil
}

func (r *RedisRecorder) Close() error {
	r.logger.Info("closing redis recorder")
	return r.client.Close()
}
