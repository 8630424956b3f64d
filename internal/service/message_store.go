package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"im-message/config"
	"im-message/internal/model"
	"im-message/internal/repository"
	"im-message/pkg/errcode"
	"im-message/pkg/logger"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// IDGenerator 消息ID生成器，并发调用不会返回重复值
type IDGenerator interface {
	Create() int64
}

// MessageStore 消息存储服务
// 写路径：路由 -> 校验 -> 分配ID -> 写入，整个过程在一个工作单元内完成
// 读路径：直接委托给仓储
type MessageStore struct {
	uow    repository.UnitOfWork
	reader repository.MessageStorage
	idGen  IDGenerator
	cfg    config.MessageConfig
	now    func() time.Time
}

// NewMessageStore 创建MessageStore实例
func NewMessageStore(uow repository.UnitOfWork, reader repository.MessageStorage, idGen IDGenerator, cfg config.MessageConfig) *MessageStore {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return &MessageStore{
		uow:    uow,
		reader: reader,
		idGen:  idGen,
		cfg:    cfg,
		now:    time.Now,
	}
}

// StoreMessage 存储一条聊天消息
// 成功后 message.MessageID 写入新分配的ID；失败时保持为空
// GroupID 非空时按群聊处理（忽略 ToUserID），否则按私聊处理
func (s *MessageStore) StoreMessage(ctx context.Context, message *model.ChatMessage) error {
	if message == nil {
		return errors.New("message is nil")
	}
	message.MessageID = ""

	var groupID int64
	isGroup := message.IsGroupMessage()
	if isGroup {
		id, err := strconv.ParseInt(strings.TrimSpace(message.GroupID), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", errcode.ErrInvalidGroupID, message.GroupID)
		}
		groupID = id
	}

	var (
		messageID int64
		sendTime  time.Time
	)
	err := s.uow.Do(ctx, func(stores repository.Stores) error {
		validator := newMessageValidator(stores)
		if isGroup {
			if err := validator.validateGroupMessage(ctx, message, groupID); err != nil {
				return err
			}
			id := s.idGen.Create()
			groupMessage := model.NewGroupMessage(id, message.TenantID, message.FormUserID, message.FormUserName, message.Content, message.MessageType)
			groupMessage.SendToGroup(groupID)
			groupMessage.CreatedAt = s.now()
			if err := stores.Messages.InsertGroupMessage(ctx, groupMessage); err != nil {
				return err
			}
			messageID, sendTime = id, groupMessage.CreatedAt
			return nil
		}

		if err := validator.validateUserMessage(ctx, message); err != nil {
			return err
		}
		id := s.idGen.Create()
		userMessage := model.NewUserMessage(id, message.TenantID, message.FormUserID, message.FormUserName, message.Content, message.MessageType)
		userMessage.SendToUser(*message.ToUserID)
		userMessage.CreatedAt = s.now()
		if err := stores.Messages.InsertUserMessage(ctx, userMessage); err != nil {
			return err
		}
		messageID, sendTime = id, userMessage.CreatedAt
		return nil
	})
	if err != nil {
		s.logStoreFailure(message, err)
		return err
	}

	// 事务提交后才回写ID，提交失败时调用方看到的仍是空ID
	message.MessageID = strconv.FormatInt(messageID, 10)
	message.SendTime = sendTime

	logger.Debug("消息已存储",
		zap.String("message_id", message.MessageID),
		zap.String("tenant_id", tenantString(message.TenantID)),
		zap.String("from", message.FormUserID.String()),
		zap.String("target", messageTarget(message)),
	)
	return nil
}

func (s *MessageStore) logStoreFailure(message *model.ChatMessage, err error) {
	fields := []zap.Field{
		zap.String("tenant_id", tenantString(message.TenantID)),
		zap.String("from", message.FormUserID.String()),
		zap.String("target", messageTarget(message)),
		zap.Bool("anonymous", message.IsAnonymous),
	}
	if code := errcode.CodeOf(err); code != "" {
		logger.Warn("消息被拒绝", append(fields, zap.String("code", string(code)))...)
		return
	}
	logger.Error("消息存储失败", append(fields, zap.Error(err))...)
}

// GetGroupMessages 分页获取群聊消息，默认按消息ID倒序（最新在前）
func (s *MessageStore) GetGroupMessages(ctx context.Context, tenantID *uuid.UUID, groupID int64, query repository.MessageQuery) ([]*model.ChatMessage, error) {
	messages, err := s.reader.GetGroupMessages(ctx, tenantID, groupID, s.normalize(query))
	if err != nil {
		return nil, err
	}
	return lo.Map(messages, func(m *model.GroupMessage, _ int) *model.ChatMessage {
		return m.ToChatMessage()
	}), nil
}

// GetChatMessages 分页获取两个用户之间的私聊消息（不区分方向）
func (s *MessageStore) GetChatMessages(ctx context.Context, tenantID *uuid.UUID, sendUserID, receiveUserID uuid.UUID, query repository.MessageQuery) ([]*model.ChatMessage, error) {
	messages, err := s.reader.GetUserMessages(ctx, tenantID, sendUserID, receiveUserID, s.normalize(query))
	if err != nil {
		return nil, err
	}
	return lo.Map(messages, func(m *model.UserMessage, _ int) *model.ChatMessage {
		return m.ToChatMessage()
	}), nil
}

// GetLastChatMessagesPerFriend 获取与每个会话对象的最近一条消息
func (s *MessageStore) GetLastChatMessagesPerFriend(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID, sorting string, reverse bool, take int) ([]*model.LastChatMessage, error) {
	if strings.TrimSpace(sorting) == "" {
		sorting = repository.SortBySendTime
	}
	messages, err := s.reader.GetLastMessagesByFriend(ctx, tenantID, userID, sorting, reverse, s.clampTake(take))
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*model.LastChatMessage{}
	}
	return messages, nil
}

// GetGroupMessageCount 获取群聊消息数量
func (s *MessageStore) GetGroupMessageCount(ctx context.Context, tenantID *uuid.UUID, groupID int64, filter string, messageType *model.MessageType) (int64, error) {
	return s.reader.GetGroupMessageCount(ctx, tenantID, groupID, filter, messageType)
}

// GetChatMessageCount 获取两个用户之间的私聊消息数量
func (s *MessageStore) GetChatMessageCount(ctx context.Context, tenantID *uuid.UUID, sendUserID, receiveUserID uuid.UUID, filter string, messageType *model.MessageType) (int64, error) {
	return s.reader.GetUserMessageCount(ctx, tenantID, sendUserID, receiveUserID, filter, messageType)
}

// normalize 填充默认排序并限制分页参数
func (s *MessageStore) normalize(query repository.MessageQuery) repository.MessageQuery {
	if strings.TrimSpace(query.Sorting) == "" {
		query.Sorting = repository.SortByMessageID
	}
	if query.Skip < 0 {
		query.Skip = 0
	}
	query.Take = s.clampTake(query.Take)
	return query
}

func (s *MessageStore) clampTake(take int) int {
	if take <= 0 {
		return s.cfg.DefaultPageSize
	}
	if take > s.cfg.MaxPageSize {
		return s.cfg.MaxPageSize
	}
	return take
}

func tenantString(tenantID *uuid.UUID) string {
	if tenantID == nil {
		return ""
	}
	return tenantID.String()
}

func messageTarget(message *model.ChatMessage) string {
	if message.IsGroupMessage() {
		return "group:" + strings.TrimSpace(message.GroupID)
	}
	if message.ToUserID != nil {
		return "user:" + message.ToUserID.String()
	}
	return ""
}
