package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"scheme-assistant-platform/models"
)

const (
	sessionKeyPrefix = "session:"
	otpKeyPrefix     = "otp:"
)

// RedisSessionStore keeps sessions in Redis so multiple instances can
// share conversation context. Redis-side TTLs piggyback on the session
// timeout, which makes Sweep a no-op here.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.SessionRecord, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec models.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, rec *models.SessionRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+rec.SessionID, raw, ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func (s *RedisSessionStore) Sweep(context.Context, time.Time) int {
	// Redis expires keys on its own.
	return 0
}

// RedisOTPStore keeps OTP records in Redis with the code expiry as the
// key TTL.
type RedisOTPStore struct {
	rdb *redis.Client
}

func NewRedisOTPStore(rdb *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{rdb: rdb}
}

func (s *RedisOTPStore) Get(ctx context.Context, phone string) (*models.OTPRecord, error) {
	raw, err := s.rdb.Get(ctx, otpKeyPrefix+phone).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec models.OTPRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisOTPStore) Put(ctx context.Context, rec *models.OTPRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, otpKeyPrefix+rec.Phone, raw, ttl).Err()
}

func (s *RedisOTPStore) Delete(ctx context.Context, phone string) error {
	return s.rdb.Del(ctx, otpKeyPrefix+phone).Err()
}

func (s *RedisOTPStore) Sweep(context.Context, time.Time) int {
	return 0
}
