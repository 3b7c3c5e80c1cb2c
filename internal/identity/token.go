// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long an issued token lives in Valkey before
	// automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces token keys in Valkey to avoid collisions.
	keyPrefix = "token:"

	// tokenLength is the byte length of the random token (32 bytes = 64 hex chars).
	tokenLength = 32
)

// TokenStore manages opaque bearer tokens in Valkey. Each token maps to
// a JSON identity payload with a TTL; resolution is a single lookup.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a token store backed by the given Valkey client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{
		client: client,
		ttl:    DefaultTTL,
	}
}

// Issue generates a new bearer token for the identity and stores it in
// Valkey. Returns the token string handed to the client.
func (s *TokenStore) Issue(ctx context.Context, ident *Identity) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("token issue: %w", err)
	}

	payload, err := json.Marshal(ident)
	if err != nil {
		return "", fmt.Errorf("token marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("token store: %w", err)
	}

	return token, nil
}

// Resolve looks a token up and returns the identity it was issued for.
// Returns nil for unknown or expired tokens (not an error).
func (s *TokenStore) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil // Expired or never issued.
	}
	if err != nil {
		return nil, fmt.Errorf("token resolve: %w", err)
	}

	var ident Identity
	if err := json.Unmarshal(payload, &ident); err != nil {
		return nil, fmt.Errorf("token unmarshal: %w", err)
	}

	return &ident, nil
}

// Revoke removes a token, ending its session immediately.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("token revoke: %w", err)
	}
	return nil
}

// generateToken creates a cryptographically random bearer token.
func generateToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
