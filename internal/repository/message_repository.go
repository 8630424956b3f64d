package repository

import (
	"context"

	"im-message/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository 消息数据仓储
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建MessageRepository实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// InsertUserMessage 写入私聊消息
func (r *MessageRepository) InsertUserMessage(ctx context.Context, message *model.UserMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// InsertGroupMessage 写入群聊消息
func (r *MessageRepository) InsertGroupMessage(ctx context.Context, message *model.GroupMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetGroupMessages 分页获取群聊消息
func (r *MessageRepository) GetGroupMessages(ctx context.Context, tenantID *uuid.UUID, groupID int64, query MessageQuery) ([]*model.GroupMessage, error) {
	var messages []*model.GroupMessage

	err := r.db.WithContext(ctx).
		Scopes(tenantScope(tenantID), groupScope(groupID), filterScope(query.Filter, query.MessageType)).
		Scopes(pageScope(query.Sorting, query.Reverse, query.Skip, query.Take)).
		Find(&messages).Error

	return messages, err
}

// GetGroupMessageCount 获取群聊消息数量
func (r *MessageRepository) GetGroupMessageCount(ctx context.Context, tenantID *uuid.UUID, groupID int64, filter string, messageType *model.MessageType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.GroupMessage{}).
		Scopes(tenantScope(tenantID), groupScope(groupID), filterScope(filter, messageType)).
		Count(&count).Error
	return count, err
}

// GetUserMessages 获取两个用户之间的私聊消息（双向）
func (r *MessageRepository) GetUserMessages(ctx context.Context, tenantID *uuid.UUID, sendUserID, receiveUserID uuid.UUID, query MessageQuery) ([]*model.UserMessage, error) {
	var messages []*model.UserMessage

	err := r.db.WithContext(ctx).
		Scopes(tenantScope(tenantID), conversationScope(sendUserID, receiveUserID), filterScope(query.Filter, query.MessageType)).
		Scopes(pageScope(query.Sorting, query.Reverse, query.Skip, query.Take)).
		Find(&messages).Error

	return messages, err
}

// GetUserMessageCount 获取两个用户之间的私聊消息数量
func (r *MessageRepository) GetUserMessageCount(ctx context.Context, tenantID *uuid.UUID, sendUserID, receiveUserID uuid.UUID, filter string, messageType *model.MessageType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserMessage{}).
		Scopes(tenantScope(tenantID), conversationScope(sendUserID, receiveUserID), filterScope(filter, messageType)).
		Count(&count).Error
	return count, err
}

// GetLastMessagesByFriend 获取用户与每个会话对象的最近一条消息
// 消息ID按时间递增，每个会话取最大消息ID即为最新消息
func (r *MessageRepository) GetLastMessagesByFriend(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID, sorting string, reverse bool, take int) ([]*model.LastChatMessage, error) {
	latest := r.db.Model(&model.UserMessage{}).
		Select("CASE WHEN form_user_id = ? THEN receive_user_id ELSE form_user_id END AS partner_id, MAX(message_id) AS last_id", userID).
		Scopes(tenantScope(tenantID), participantScope(userID)).
		Group("partner_id")

	if sorting == "" {
		sorting = SortBySendTime
	}

	var messages []*model.UserMessage
	err := r.db.WithContext(ctx).
		Joins("JOIN (?) AS latest ON user_message.message_id = latest.last_id", latest).
		Scopes(pageScope(sorting, reverse, 0, take)).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	result := make([]*model.LastChatMessage, 0, len(messages))
	for _, m := range messages {
		result = append(result, &model.LastChatMessage{
			MessageID:    m.MessageID,
			FormUserID:   m.FormUserID,
			FormUserName: m.FormUserName,
			ToUserID:     m.ReceiveUserID,
			Content:      m.Content,
			MessageType:  m.MessageType,
			SendTime:     m.CreatedAt,
		})
	}
	return result, nil
}

// conversationScope 两个用户之间任意方向的消息
func conversationScope(userA, userB uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"((form_user_id = ? AND receive_user_id = ?) OR (form_user_id = ? AND receive_user_id = ?))",
			userA, userB, userB, userA,
		)
	}
}

func groupScope(groupID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	}
}

// participantScope 用户作为发送方或接收方
func participantScope(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(form_user_id = ? OR receive_user_id = ?)", userID, userID)
	}
}
