package redis

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rushteam/digkit/filter"
	"github.com/rushteam/digkit/store"
)

// RedisSeenChecker 用 Redis 持久化的布隆过滤器记录“已经推荐过哪些艺人”。
// 实现 filter.SeenChecker，供 SeenFilter 做曝光去重。
//
// 使用方式：
//
//	rs, _ := store.NewRedisStore("localhost:6379", 0)
//	checker := redis.NewRedisSeenChecker(rs, 1000000, 0.01)
//	seenFilter := &filter.SeenFilter{Checker: checker}
//
// 曝光写入侧在出榜后调 BatchAdd；布隆过滤器只增不删，
// 按 key 加 TTL 让整段曝光历史自然过期。
var _ filter.SeenChecker = (*RedisSeenChecker)(nil)

type RedisSeenChecker struct {
	client *redis.Client

	// capacity 预期元素数量
	capacity uint
	// falsePositiveRate 期望误判率（0.01 即 1%）
	falsePositiveRate float64

	// 本地缓存，避免每次查询都从 Redis 读取并反序列化
	cache map[string]*bloom.BloomFilter
	mu    sync.RWMutex
}

// NewRedisSeenChecker 复用 RedisStore 的连接创建曝光检查器。
func NewRedisSeenChecker(s *store.RedisStore, capacity uint, falsePositiveRate float64) *RedisSeenChecker {
	return NewRedisSeenCheckerWithClient(s.GetClient(), capacity, falsePositiveRate)
}

// NewRedisSeenCheckerWithClient 使用现成的 *redis.Client 创建（高级用法）。
func NewRedisSeenCheckerWithClient(client *redis.Client, capacity uint, falsePositiveRate float64) *RedisSeenChecker {
	return &RedisSeenChecker{
		client:            client,
		capacity:          capacity,
		falsePositiveRate: falsePositiveRate,
		cache:             make(map[string]*bloom.BloomFilter),
	}
}

// Seen 检查 artistID 是否在 key 对应的布隆过滤器中。
// 返回 true 表示可能曝光过（布隆过滤器允许误判），false 表示一定没有。
func (r *RedisSeenChecker) Seen(ctx context.Context, key string, artistID string) (bool, error) {
	r.mu.RLock()
	cached, exists := r.cache[key]
	r.mu.RUnlock()

	if exists && cached != nil {
		return cached.Test([]byte(artistID)), nil
	}

	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// 过滤器不存在，一定没曝光过
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get bloom filter from redis: %w", err)
	}

	bf := bloom.NewWithEstimates(r.capacity, r.falsePositiveRate)
	if _, err := bf.ReadFrom(bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("deserialize bloom filter: %w", err)
	}

	r.mu.Lock()
	r.cache[key] = bf
	r.mu.Unlock()

	return bf.Test([]byte(artistID)), nil
}

// Add 把单个 artistID 写入曝光集合。ttl 单位秒，0 表示不过期。
func (r *RedisSeenChecker) Add(ctx context.Context, key string, artistID string, ttl int) error {
	return r.BatchAdd(ctx, key, []string{artistID}, ttl)
}

// BatchAdd 把一批 artistID 写入曝光集合，出榜后整榜回写用这个。
func (r *RedisSeenChecker) BatchAdd(ctx context.Context, key string, artistIDs []string, ttl int) error {
	bf, err := r.load(ctx, key)
	if err != nil {
		return err
	}

	for _, id := range artistIDs {
		bf.Add([]byte(id))
	}

	var buf bytes.Buffer
	if _, err := bf.WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize bloom filter: %w", err)
	}

	var expiration time.Duration
	if ttl > 0 {
		expiration = time.Duration(ttl) * time.Second
	}
	if err := r.client.Set(ctx, key, buf.Bytes(), expiration).Err(); err != nil {
		return fmt.Errorf("save bloom filter to redis: %w", err)
	}

	r.mu.Lock()
	r.cache[key] = bf
	r.mu.Unlock()

	return nil
}

// load 取本地缓存的过滤器，没有则从 Redis 读或新建。
func (r *RedisSeenChecker) load(ctx context.Context, key string) (*bloom.BloomFilter, error) {
	r.mu.RLock()
	cached, exists := r.cache[key]
	r.mu.RUnlock()

	if exists && cached != nil {
		return cached, nil
	}

	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return bloom.NewWithEstimates(r.capacity, r.falsePositiveRate), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bloom filter from redis: %w", err)
	}

	bf := bloom.NewWithEstimates(r.capacity, r.falsePositiveRate)
	if _, err := bf.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("deserialize bloom filter: %w", err)
	}
	return bf, nil
}

// ClearCache 清空本地缓存，强制下次从 Redis 重新加载。
func (r *RedisSeenChecker) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*bloom.BloomFilter)
}
