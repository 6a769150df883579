package aliases

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps alias and order maps in per-user Redis hashes.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func aliasKey(userID string) string { return "aliases:" + userID }
func orderKey(userID string) string { return "grouporder:" + userID }

func (s *RedisStore) Aliases(ctx context.Context, userID string) (map[string]string, error) {
	m, err := s.client.HGetAll(ctx, aliasKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading aliases: %w", err)
	}
	return m, nil
}

func (s *RedisStore) SetAlias(ctx context.Context, userID, domainKey, alias string) error {
	if alias == "" {
		if err := s.client.HDel(ctx, aliasKey(userID), domainKey).Err(); err != nil {
			return fmt.Errorf("deleting alias: %w", err)
		}
		return nil
	}
	if err := s.client.HSet(ctx, aliasKey(userID), domainKey, alias).Err(); err != nil {
		return fmt.Errorf("writing alias: %w", err)
	}
	return nil
}

func (s *RedisStore) Order(ctx context.Context, userID string) (map[string]int, error) {
	raw, err := s.client.HGetAll(ctx, orderKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading order: %w", err)
	}

	out := make(map[string]int, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			// A corrupt entry should not take the whole map down.
			continue
		}
		out[k] = n
	}
	return out, nil
}

func (s *RedisStore) SetOrder(ctx context.Context, userID, domainKey string, position int) error {
	if err := s.client.HSet(ctx, orderKey(userID), domainKey, strconv.Itoa(position)).Err(); err != nil {
		return fmt.Errorf("writing order: %w", err)
	}
	return nil
}
