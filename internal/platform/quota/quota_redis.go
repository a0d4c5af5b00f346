// Package quota tracks per-user free scan usage.
package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	analysisusecase "nutrilens_backend/internal/feature/analysis/usecase"
)

// ScanCounterRedis はRedisを利用した解析回数カウンターです。
type ScanCounterRedis struct {
	client *redis.Client
	prefix string
}

// インターフェースを満たしているかコンパイル時に検証
var _ analysisusecase.ScanCounter = (*ScanCounterRedis)(nil)

// NewScanCounterRedis はScanCounterRedisの新しいインスタンスを生成します。
func NewScanCounterRedis(client *redis.Client, prefix string) *ScanCounterRedis {
	return &ScanCounterRedis{client: client, prefix: prefix}
}

// Count は現在の使用回数を返します。キーがなければ0です。
func (s *ScanCounterRedis) Count(ctx context.Context, userID uint) (int64, error) {
	n, err := s.client.Get(ctx, s.key(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Increment は使用回数を1増やし、新しい値を返します。
func (s *ScanCounterRedis) Increment(ctx context.Context, userID uint) (int64, error) {
	return s.client.Incr(ctx, s.key(userID)).Result()
}

// Reset は使用回数を0に戻します。
func (s *ScanCounterRedis) Reset(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

func (s *ScanCounterRedis) key(userID uint) string {
	return fmt.Sprintf("%s:user:%d", s.prefix, userID)
}
