package repository

import (
	"context"
	"errors"
	"fmt"

	"im-message/internal/model"
	"im-message/pkg/errcode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendRepository 好友关系仓储
type FriendRepository struct {
	orm *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{orm: db}
}

func (r *FriendRepository) GetContact(ctx context.Context, tenantID *uuid.UUID, ownerID, otherUserID uuid.UUID) (*model.UserFriend, error) {
	var f model.UserFriend
	err := r.orm.WithContext(ctx).
		Scopes(tenantScope(tenantID)).
		Where("user_id = ? AND friend_id = ?", ownerID, otherUserID).
		Take(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// GroupRepository 群组仓储
type GroupRepository struct {
	orm *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{orm: db}
}

func (r *GroupRepository) IsSenderBlocked(ctx context.Context, tenantID *uuid.UUID, groupID int64, senderID uuid.UUID) (bool, error) {
	var count int64
	err := r.orm.WithContext(ctx).Model(&model.GroupBlack{}).
		Scopes(tenantScope(tenantID)).
		Where("group_id = ? AND shield_user_id = ?", groupID, senderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, tenantID *uuid.UUID, groupID int64) (*model.ChatGroup, error) {
	var g model.ChatGroup
	err := r.orm.WithContext(ctx).
		Scopes(tenantScope(tenantID)).
		Where("group_id = ?", groupID).
		Take(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", errcode.ErrGroupNotFound, groupID)
		}
		return nil, err
	}
	return &g, nil
}

// ChatSettingRepository 用户聊天设置仓储
type ChatSettingRepository struct {
	orm *gorm.DB
}

func NewChatSettingRepository(db *gorm.DB) *ChatSettingRepository {
	return &ChatSettingRepository{orm: db}
}

func (r *ChatSettingRepository) FindByUserID(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID) (*model.UserChatSetting, error) {
	var s model.UserChatSetting
	err := r.orm.WithContext(ctx).
		Scopes(tenantScope(tenantID)).
		Where("user_id = ?", userID).
		Take(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
