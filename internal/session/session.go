// Package session keeps login sessions in redis. A session id travels in an
// HttpOnly cookie and resolves to the principal that logged in.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/config"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string    `json:"-"`
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Session) Principal() (authz.Principal, error) {
	role, err := authz.ParseRole(s.Role)
	if err != nil {
		return authz.Principal{}, err
	}
	return authz.Principal{UserID: s.UserID, Role: role}, nil
}

type Store interface {
	Create(ctx context.Context, p authz.Principal, now time.Time) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteForUser revokes every session of the user.
	DeleteForUser(ctx context.Context, userID uint) error
}

// ======================================================
// REDIS
// ======================================================

// NewRedisClient connects and pings.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis addr is empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(id string) string { return "session:" + id }

func userKey(userID uint) string { return "user_sessions:" + strconv.FormatUint(uint64(userID), 10) }

func (s *RedisStore) Create(ctx context.Context, p authz.Principal, now time.Time) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    p.UserID,
		Role:      p.Role.String(),
		CreatedAt: now,
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("encode session: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key(sess.ID), payload, s.ttl)
		pipe.SAdd(ctx, userKey(p.UserID), sess.ID)
		pipe.Expire(ctx, userKey(p.UserID), s.ttl)
		return nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Session{}, ErrNotFound
	}

	raw, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	sess.ID = id
	return sess, nil
}

// Delete is idempotent.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key(id))
		if sess.UserID != 0 {
			pipe.SRem(ctx, userKey(sess.UserID), id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteForUser(ctx context.Context, userID uint) error {
	ids, err := s.rdb.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, key(id))
	}
	keys = append(keys, userKey(userID))

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}
