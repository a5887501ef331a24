package redis

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CSRFStore implements ports.CSRFStore. One token per operator session; a new
// login replaces the previous token.
type CSRFStore struct {
	client *goredis.Client
	prefix string
}

// NewCSRFStore creates a new Redis-backed CSRF token store.
func NewCSRFStore(client *goredis.Client) *CSRFStore {
	return &CSRFStore{
		client: client,
		prefix: "csrf:",
	}
}

// Issue generates a random token for the operator and stores it with TTL.
func (s *CSRFStore) Issue(ctx context.Context, operatorID string, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, s.prefix+operatorID, token, ttl).Err(); err != nil {
		return "", fmt.Errorf("redis csrf set: %w", err)
	}
	return token, nil
}

// Validate compares the presented token against the stored one in constant
// time. A missing key (expired session) is not an error, just invalid.
func (s *CSRFStore) Validate(ctx context.Context, operatorID, token string) (bool, error) {
	stored, err := s.client.Get(ctx, s.prefix+operatorID).Result()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis csrf get: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1, nil
}
