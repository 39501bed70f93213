package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	sessionerrors "go-leaveflow/internal/session/errors"
)

//go:generate mockgen -source=session_store.go -destination=mock/session_store_mock.go -package=mock
type Store interface {
	Create(ctx context.Context, sess Session) error
	Get(ctx context.Context, id string) (Session, error)
	Active(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	RevokeUserAfter(ctx context.Context, userID string, delay time.Duration) (time.Time, error)
	RevokedAt(ctx context.Context, userID string) (time.Time, bool, error)
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func sessionKey(id string) string { return "session:" + id }
func revokedKey(userID string) string { return "session:revoked:" + userID }

func (s *redisStore) Create(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := s.ttl
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}
	return s.rdb.Set(ctx, sessionKey(sess.ID), raw, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, sessionerrors.ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Active returns the session only if it exists and has not been cut off by
// a user level revocation that is already in effect.
func (s *redisStore) Active(ctx context.Context, id string) (Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}

	revokedAt, ok, err := s.RevokedAt(ctx, sess.UserID)
	if err != nil {
		return Session{}, err
	}
	if ok && IsRevoked(sess, revokedAt, s.now()) {
		_ = s.Delete(ctx, id)
		return Session{}, sessionerrors.ErrSessionRevoked
	}
	return sess, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

// RevokeUserAfter ends every session of userID created before now+delay,
// effective once now+delay has passed.
func (s *redisStore) RevokeUserAfter(ctx context.Context, userID string, delay time.Duration) (time.Time, error) {
	effective := s.now().Add(delay)
	err := s.rdb.Set(ctx,
		revokedKey(userID),
		strconv.FormatInt(effective.UnixNano(), 10),
		s.ttl+delay,
	).Err()
	if err != nil {
		return time.Time{}, err
	}
	return effective, nil
}

func (s *redisStore) RevokedAt(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, err := s.rdb.Get(ctx, revokedKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("decode revocation: %w", err)
	}
	return time.Unix(0, nanos), true, nil
}

func IsRevoked(sess Session, revokedAt, now time.Time) bool {
	return !now.Before(revokedAt) && sess.CreatedAt.Before(revokedAt)
}
