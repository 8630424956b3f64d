package repository

import (
	"context"

	"im-message/internal/model"
	"im-message/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PolicyCache 聊天设置与群组策略缓存
// 缓存未命中返回 nil, nil；只缓存存在的记录
type PolicyCache interface {
	GetChatSetting(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID) (*model.UserChatSetting, error)
	SetChatSetting(ctx context.Context, setting *model.UserChatSetting) error
	GetGroup(ctx context.Context, tenantID *uuid.UUID, groupID int64) (*model.ChatGroup, error)
	SetGroup(ctx context.Context, group *model.ChatGroup) error
}

// WithPolicyCache 为设置和群组查询加上缓存，缓存故障时回源数据库
func WithPolicyCache(cache PolicyCache) StoresDecorator {
	return func(s Stores) Stores {
		s.Settings = &cachedChatSettingStore{next: s.Settings, cache: cache}
		s.Groups = &cachedGroupStore{next: s.Groups, cache: cache}
		return s
	}
}

type cachedChatSettingStore struct {
	next  ChatSettingStore
	cache PolicyCache
}

func (s *cachedChatSettingStore) FindByUserID(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID) (*model.UserChatSetting, error) {
	cached, err := s.cache.GetChatSetting(ctx, tenantID, userID)
	if err != nil {
		logger.Warn("读取聊天设置缓存失败", zap.String("user_id", userID.String()), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	setting, err := s.next.FindByUserID(ctx, tenantID, userID)
	if err != nil || setting == nil {
		return setting, err
	}
	if err := s.cache.SetChatSetting(ctx, setting); err != nil {
		logger.Warn("写入聊天设置缓存失败", zap.String("user_id", userID.String()), zap.Error(err))
	}
	return setting, nil
}

// cachedGroupStore 只缓存群组策略，黑名单每次都查库
type cachedGroupStore struct {
	next  GroupStore
	cache PolicyCache
}

func (s *cachedGroupStore) IsSenderBlocked(ctx context.Context, tenantID *uuid.UUID, groupID int64, senderID uuid.UUID) (bool, error) {
	return s.next.IsSenderBlocked(ctx, tenantID, groupID, senderID)
}

func (s *cachedGroupStore) GetByID(ctx context.Context, tenantID *uuid.UUID, groupID int64) (*model.ChatGroup, error) {
	cached, err := s.cache.GetGroup(ctx, tenantID, groupID)
	if err != nil {
		logger.Warn("读取群组缓存失败", zap.Int64("group_id", groupID), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	group, err := s.next.GetByID(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetGroup(ctx, group); err != nil {
		logger.Warn("写入群组缓存失败", zap.Int64("group_id", groupID), zap.Error(err))
	}
	return group, nil
}
