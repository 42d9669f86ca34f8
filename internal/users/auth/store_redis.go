// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/constants"
)

// # Confirmation Code Repository

// RedisCodeRepository implements CodeRepository using Redis.
//
// Keys are prefixed per the cache taxonomy in [constants] and expire with the
// code TTL, so abandoned signups clean themselves up.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewCodeRepository creates a new Redis-backed CodeRepository.
func NewCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

/*
Set stores the confirmation code for a username with a TTL.

Description: A plain SET, so a fresh signup for the same username overwrites
the earlier code. Only the latest emailed code is exchangeable.

Parameters:
  - context: context.Context
  - username: string
  - code: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisCodeRepository) Set(context context.Context, username, code string, ttl time.Duration) error {
	key := constants.RedisPrefixConfirmationCode + username

	if err := repository.client.Set(context, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the stored confirmation code for a username.

Description: Returns apperr.NotFound if no code is stored or it has expired.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - string: The stored code
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisCodeRepository) Get(context context.Context, username string) (string, error) {
	key := constants.RedisPrefixConfirmationCode + username

	code, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code")
		}
		return "", fmt.Errorf("redis_confirmation_code_get_failed: %w", err)
	}

	return code, nil
}

/*
Delete removes the code after a successful exchange.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisCodeRepository) Delete(context context.Context, username string) error {
	key := constants.RedisPrefixConfirmationCode + username

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_delete_failed: %w", err)
	}

	return nil
}
