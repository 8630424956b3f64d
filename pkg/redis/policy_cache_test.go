package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"im-message/config"
	"im-message/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*PolicyCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	c, err := InitRedis(context.Background(), config.RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return NewPolicyCache(c, time.Minute), mr
}

func TestPolicyCache_ChatSettingRoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	tenant := uuid.New()
	userID := uuid.New()

	got, err := cache.GetChatSetting(ctx, &tenant, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	setting := &model.UserChatSetting{TenantID: &tenant, UserID: userID, AllowReceiveMessage: true, AllowAnonymous: true}
	require.NoError(t, cache.SetChatSetting(ctx, setting))

	key := chatSettingKey(&tenant, userID)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, err = cache.GetChatSetting(ctx, &tenant, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.AllowAnonymous)
	assert.True(t, got.AllowReceiveMessage)

	// 其他租户不可见
	other, err := cache.GetChatSetting(ctx, nil, userID)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestPolicyCache_GroupExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetGroup(ctx, &model.ChatGroup{GroupID: 7, AllowSendMessage: true}))

	got, err := cache.GetGroup(ctx, nil, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.AllowSendMessage)
	assert.False(t, got.AllowAnonymous)

	mr.FastForward(2 * time.Minute)

	got, err = cache.GetGroup(ctx, nil, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPolicyCache_CorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set(groupPolicyKey(nil, 9), "{not json"))

	_, err := cache.GetGroup(context.Background(), nil, 9)
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	newTestCache(t)
	assert.NoError(t, HealthCheck(context.Background()))
}
