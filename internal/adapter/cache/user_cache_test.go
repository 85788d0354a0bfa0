package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-account-service/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func testUser() *domain.User {
	return &domain.User{
		ID:        1,
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "a@x.com",
		Password:  "$2a$10$abcdefghijklmnopqrstuv",
		UserName:  "alice",
		Bio:       "hello",
	}
}

func TestRedisUserCache_Set_Success(t *testing.T) {
	client, _ := setupTestRedis(t)
	logger := zaptest.NewLogger(t)
	cache := NewRedisUserCache(client, 5*time.Minute, logger)

	u := testUser()
	err := cache.Set(context.Background(), u)
	require.NoError(t, err)

	// Verify data is in Redis
	data, err := client.Get(context.Background(), "user:1").Bytes()
	require.NoError(t, err)

	var cached domain.User
	err = json.Unmarshal(data, &cached)
	require.NoError(t, err)

	assert.Equal(t, u.ID, cached.ID)
	assert.Equal(t, u.Email, cached.Email)
	assert.Equal(t, u.UserName, cached.UserName)
	assert.Equal(t, u.Password, cached.Password)
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	client, _ := setupTestRedis(t)
	logger := zaptest.NewLogger(t)
	cache := NewRedisUserCache(client, 5*time.Minute, logger)

	err := cache.Set(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cache nil user")
}

func TestRedisUserCache_Get_Success(t *testing.T) {
	client, _ := setupTestRedis(t)
	logger := zaptest.NewLogger(t)
	cache := NewRedisUserCache(client, 5*time.Minute, logger)

	u := testUser()
	require.NoError(t, cache.Set(context.Background(), u))

	cached, err := cache.Get(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, u.Email, cached.Email)
	assert.Equal(t, u.FirstName, cached.FirstName)
}

func TestRedisUserCache_Get_Miss(t *testing.T) {
	client, _ := setupTestRedis(t)
	logger := zaptest.NewLogger(t)
	cache := NewRedisUserCache(client, 5*time.Minute, logger)

	cached, err := cache.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisUserCache_Get_TTLExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	logger := zaptest.NewLogger(t)
	cache := NewRedisUserCache(client, time.Minute, logger)

	require.NoError(t, cache.Set(context.Background(), testUser()))

	mr.FastForward(2 * time.Minute)

	cached, err := cache.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisUserCache_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	logger := zaptest.NewLogger(t)
	cache := NewRedisUserCache(client, 5*time.Minute, logger)

	require.NoError(t, cache.Set(context.Background(), testUser()))
	require.NoError(t, cache.Delete(context.Background(), 1))

	cached, err := cache.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, cached)
}
