package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"im-message/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// 策略缓存相关常量
const (
	ChatSettingKeyPrefix = "im:policy:setting:" // 用户聊天设置key前缀
	GroupPolicyKeyPrefix = "im:policy:group:"   // 群组策略key前缀
	hostTenant           = "host"               // 无租户时的key片段
)

// PolicyCache 基于Redis的聊天设置/群组策略缓存
// 仅靠TTL过期，策略变更后最多延迟一个TTL生效
type PolicyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPolicyCache 创建策略缓存
func NewPolicyCache(client *redis.Client, ttl time.Duration) *PolicyCache {
	return &PolicyCache{client: client, ttl: ttl}
}

func tenantKey(tenantID *uuid.UUID) string {
	if tenantID == nil {
		return hostTenant
	}
	return tenantID.String()
}

func chatSettingKey(tenantID *uuid.UUID, userID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", ChatSettingKeyPrefix, tenantKey(tenantID), userID)
}

func groupPolicyKey(tenantID *uuid.UUID, groupID int64) string {
	return fmt.Sprintf("%s%s:%d", GroupPolicyKeyPrefix, tenantKey(tenantID), groupID)
}

// GetChatSetting 获取缓存的聊天设置，未命中返回 nil, nil
func (c *PolicyCache) GetChatSetting(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID) (*model.UserChatSetting, error) {
	var setting model.UserChatSetting
	ok, err := c.get(ctx, chatSettingKey(tenantID, userID), &setting)
	if err != nil || !ok {
		return nil, err
	}
	return &setting, nil
}

// SetChatSetting 缓存聊天设置
func (c *PolicyCache) SetChatSetting(ctx context.Context, setting *model.UserChatSetting) error {
	return c.set(ctx, chatSettingKey(setting.TenantID, setting.UserID), setting)
}

// GetGroup 获取缓存的群组策略，未命中返回 nil, nil
func (c *PolicyCache) GetGroup(ctx context.Context, tenantID *uuid.UUID, groupID int64) (*model.ChatGroup, error) {
	var group model.ChatGroup
	ok, err := c.get(ctx, groupPolicyKey(tenantID, groupID), &group)
	if err != nil || !ok {
		return nil, err
	}
	return &group, nil
}

// SetGroup 缓存群组策略
func (c *PolicyCache) SetGroup(ctx context.Context, group *model.ChatGroup) error {
	return c.set(ctx, groupPolicyKey(group.TenantID, group.GroupID), group)
}

func (c *PolicyCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("读取缓存失败: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("反序列化缓存失败: %w", err)
	}
	return true, nil
}

func (c *PolicyCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存失败: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}
