package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"im-message/internal/model"

	"github.com/google/uuid"
)

// 所有读写都显式携带租户ID，nil 表示宿主（无租户）

// FriendStore 好友关系查询
type FriendStore interface {
	// GetContact 查询 ownerID 通讯录中的 otherUserID，不存在时返回 nil, nil
	GetContact(ctx context.Context, tenantID *uuid.UUID, ownerID, otherUserID uuid.UUID) (*model.UserFriend, error)
}

// GroupStore 群组策略查询
type GroupStore interface {
	IsSenderBlocked(ctx context.Context, tenantID *uuid.UUID, groupID int64, senderID uuid.UUID) (bool, error)
	// GetByID 群组不存在时返回 errcode.ErrGroupNotFound
	GetByID(ctx context.Context, tenantID *uuid.UUID, groupID int64) (*model.ChatGroup, error)
}

// ChatSettingStore 用户聊天设置查询
type ChatSettingStore interface {
	// FindByUserID 没有设置记录时返回 nil, nil
	FindByUserID(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID) (*model.UserChatSetting, error)
}

// MessageStorage 消息持久化与查询
type MessageStorage interface {
	InsertUserMessage(ctx context.Context, message *model.UserMessage) error
	InsertGroupMessage(ctx context.Context, message *model.GroupMessage) error

	GetGroupMessages(ctx context.Context, tenantID *uuid.UUID, groupID int64, query MessageQuery) ([]*model.GroupMessage, error)
	GetGroupMessageCount(ctx context.Context, tenantID *uuid.UUID, groupID int64, filter string, messageType *model.MessageType) (int64, error)

	GetUserMessages(ctx context.Context, tenantID *uuid.UUID, sendUserID, receiveUserID uuid.UUID, query MessageQuery) ([]*model.UserMessage, error)
	GetUserMessageCount(ctx context.Context, tenantID *uuid.UUID, sendUserID, receiveUserID uuid.UUID, filter string, messageType *model.MessageType) (int64, error)

	GetLastMessagesByFriend(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID, sorting string, reverse bool, take int) ([]*model.LastChatMessage, error)
}

// Stores 一组绑定到同一数据库会话（或事务）的仓储
type Stores struct {
	Friends  FriendStore
	Groups   GroupStore
	Settings ChatSettingStore
	Messages MessageStorage
}

// UnitOfWork 工作单元：fn 内的所有写入要么全部提交，要么全部回滚
type UnitOfWork interface {
	Do(ctx context.Context, fn func(stores Stores) error) error
}
