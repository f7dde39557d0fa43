package security

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CounterStore tracks timestamped events per key inside a sliding window.
// Used by the admin-setup guard chain for request rate limiting and setup
// attempt limiting.
type CounterStore interface {
	// Count returns how many events for key fall inside the trailing window
	Count(key string, window time.Duration) (int, error)
	// Record registers one event for key, expiring after window
	Record(key string, window time.Duration) error
}

// MemoryCounterStore is a process-local store. Expired events are pruned on
// every touch and the number of tracked keys is capped, so retention stays
// bounded. Only correct for single-process deployments.
type MemoryCounterStore struct {
	mu      sync.Mutex
	events  map[string][]time.Time
	maxKeys int
}

func NewMemoryCounterStore(maxKeys int) *MemoryCounterStore {
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &MemoryCounterStore{
		events:  make(map[string][]time.Time),
		maxKeys: maxKeys,
	}
}

func (s *MemoryCounterStore) Count(key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prune(key, window)), nil
}

func (s *MemoryCounterStore) Record(key string, window time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[key]; !exists && len(s.events) >= s.maxKeys {
		s.evictOldest()
	}
	s.events[key] = append(s.prune(key, window), time.Now())
	return nil
}

// prune drops events older than the window. Caller holds the lock.
func (s *MemoryCounterStore) prune(key string, window time.Duration) []time.Time {
	cutoff := time.Now().Add(-window)
	kept := s.events[key][:0]
	for _, t := range s.events[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(s.events, key)
		return nil
	}
	s.events[key] = kept
	return kept
}

// evictOldest removes the key whose most recent event is oldest. Caller
// holds the lock.
func (s *MemoryCounterStore) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	for key, events := range s.events {
		last := events[len(events)-1]
		if oldestKey == "" || last.Before(oldestTime) {
			oldestKey = key
			oldestTime = last
		}
	}
	if oldestKey != "" {
		delete(s.events, oldestKey)
	}
}

// RedisCounterStore shares counter state across instances through a Redis
// sorted set per key, scored by event time.
type RedisCounterStore struct {
	client *redis.Client
	prefix string
}

func NewRedisCounterStore(addr string) *RedisCounterStore {
	return &RedisCounterStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: "cyberlab:setup:",
	}
}

func (s *RedisCounterStore) Count(key string, window time.Duration) (int, error) {
	ctx := context.Background()
	redisKey := s.prefix + key
	cutoff := time.Now().Add(-window).UnixNano()

	if err := s.client.ZRemRangeByScore(ctx, redisKey, "-inf", fmt.Sprintf("%d", cutoff)).Err(); err != nil {
		return 0, err
	}
	count, err := s.client.ZCard(ctx, redisKey).Result()
	return int(count), err
}

func (s *RedisCounterStore) Record(key string, window time.Duration) error {
	ctx := context.Background()
	redisKey := s.prefix + key
	now := time.Now()

	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())
	if err := s.client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: member,
	}).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, redisKey, window).Err()
}
