package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage is a Redis-backed implementation of the Storage interface
// for multi-process deployments. Records are stored as JSON values under
// "<prefix>:<scope>:<id>" with a per-scope sorted set ("<prefix>:<scope>:index",
// scored by creation time) providing newest-first ordering. Records with an
// expiry get a matching key TTL; their index entries are pruned lazily
// during List.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
}

// RedisStorageOption configures a RedisStorage.
type RedisStorageOption func(*RedisStorage)

// WithKeyPrefix overrides the default "history" key prefix.
func WithKeyPrefix(prefix string) RedisStorageOption {
	return func(s *RedisStorage) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStorage creates a Redis-backed record storage.
func NewRedisStorage(client redis.UniversalClient, opts ...RedisStorageOption) *RedisStorage {
	s := &RedisStorage{
		client: client,
		prefix: "history",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStorage) Create(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	if rec.Scope == "" {
		return ErrMissingScope
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("history: marshaling record %s: %w", rec.ID, err)
	}

	var ttl time.Duration
	if rec.ExpiresAt != nil {
		ttl = time.Until(*rec.ExpiresAt)
		if ttl <= 0 {
			return nil // already expired, nothing to store
		}
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.recordKey(rec.Scope, rec.ID), payload, ttl)
		pipe.ZAdd(ctx, s.indexKey(rec.Scope), redis.Z{
			Score:  float64(rec.CreatedAt.UnixNano()),
			Member: rec.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("history: storing record %s: %w", rec.ID, err)
	}
	return nil
}

func (s *RedisStorage) Get(ctx context.Context, scope, id string) (*Record, error) {
	payload, err := s.client.Get(ctx, s.recordKey(scope, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: fetching record %s: %w", id, err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("history: decoding record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *RedisStorage) List(ctx context.Context, scope string, opts ListOptions) ([]Record, error) {
	// Newest first by creation-time score.
	ids, err := s.client.ZRevRange(ctx, s.indexKey(scope), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("history: reading index for scope %s: %w", scope, err)
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recordKey(scope, id)
	}

	payloads, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("history: fetching records for scope %s: %w", scope, err)
	}

	var filtered []Record
	var stale []string
	for i, payload := range payloads {
		raw, ok := payload.(string)
		if !ok {
			// Value expired but its index entry survived; prune it lazily.
			stale = append(stale, ids[i])
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("history: decoding record %s: %w", ids[i], err)
		}
		if !matches(rec, opts) {
			continue
		}
		filtered = append(filtered, rec)
	}

	if len(stale) > 0 {
		members := make([]any, len(stale))
		for i, id := range stale {
			members[i] = id
		}
		// Best effort, the next List prunes again if this fails.
		_ = s.client.ZRem(ctx, s.indexKey(scope), members...).Err()
	}

	start := opts.Offset
	if start > len(filtered) {
		return []Record{}, nil
	}

	end := start + opts.Limit
	if opts.Limit == 0 || end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], nil
}

func (s *RedisStorage) MarkRead(ctx context.Context, scope string, ids ...string) error {
	for _, id := range ids {
		rec, err := s.Get(ctx, scope, id)
		if errors.Is(err, ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		rec.MarkAsRead()
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("history: marshaling record %s: %w", id, err)
		}

		// KeepTTL preserves the expiry set at creation.
		if err := s.client.Set(ctx, s.recordKey(scope, id), payload, redis.KeepTTL).Err(); err != nil {
			return fmt.Errorf("history: updating record %s: %w", id, err)
		}
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, scope string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = s.recordKey(scope, id)
		members[i] = id
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, s.indexKey(scope), members...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("history: deleting records for scope %s: %w", scope, err)
	}
	return nil
}

func (s *RedisStorage) CountUnread(ctx context.Context, scope string) (int, error) {
	records, err := s.List(ctx, scope, ListOptions{OnlyUnread: true})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *RedisStorage) recordKey(scope, id string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, scope, id)
}

func (s *RedisStorage) indexKey(scope string) string {
	return fmt.Sprintf("%s:%s:index", s.prefix, scope)
}
