package handler

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"im-message/internal/model"
	"im-message/internal/repository"
	"im-message/pkg/errcode"
	"im-message/pkg/jwt"
	"im-message/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MessageService 消息存储与查询，由 service.MessageStore 实现
type MessageService interface {
	StoreMessage(ctx context.Context, message *model.ChatMessage) error
	GetGroupMessages(ctx context.Context, tenantID *uuid.UUID, groupID int64, query repository.MessageQuery) ([]*model.ChatMessage, error)
	GetGroupMessageCount(ctx context.Context, tenantID *uuid.UUID, groupID int64, filter string, messageType *model.MessageType) (int64, error)
	GetChatMessages(ctx context.Context, tenantID *uuid.UUID, sendUserID, receiveUserID uuid.UUID, query repository.MessageQuery) ([]*model.ChatMessage, error)
	GetChatMessageCount(ctx context.Context, tenantID *uuid.UUID, sendUserID, receiveUserID uuid.UUID, filter string, messageType *model.MessageType) (int64, error)
	GetLastChatMessagesPerFriend(ctx context.Context, tenantID *uuid.UUID, userID uuid.UUID, sorting string, reverse bool, take int) ([]*model.LastChatMessage, error)
}

// MessageHandler 消息处理器
type MessageHandler struct {
	service MessageService
}

// NewMessageHandler 创建MessageHandler实例
func NewMessageHandler(s MessageService) *MessageHandler {
	registerValidations()
	return &MessageHandler{service: s}
}

var registerOnce sync.Once

// registerValidations 向gin的校验器注册 messagetype 规则
func registerValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("messagetype", func(fl validator.FieldLevel) bool {
				_, ok := model.ParseMessageType(fl.Field().String())
				return ok
			})
		}
	})
}

// RegisterRoutes 注册消息相关路由
func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/messages", h.SendMessage)

	groups := rg.Group("/groups/:group_id")
	groups.GET("/messages", h.GetGroupMessages)
	groups.GET("/messages/count", h.GetGroupMessageCount)

	chats := rg.Group("/chats")
	chats.GET("/last", h.GetLastChatMessages)
	chats.GET("/:user_id/messages", h.GetChatMessages)
	chats.GET("/:user_id/messages/count", h.GetChatMessageCount)
}

type sendMessageRequest struct {
	ToUserID    *uuid.UUID `json:"to_user_id"`
	GroupID     string     `json:"group_id"`
	Content     string     `json:"content" binding:"required"`
	MessageType string     `json:"message_type" binding:"omitempty,messagetype"`
	IsAnonymous bool       `json:"is_anonymous"`
}

// listQuery 列表查询参数
type listQuery struct {
	Filter      string `form:"filter"`
	Sorting     string `form:"sorting"`
	Reverse     bool   `form:"reverse,default=true"` // 缺省按最新优先
	MessageType string `form:"message_type" binding:"omitempty,messagetype"`
	Skip        int    `form:"skip"`
	Take        int    `form:"take"`
}

func (q *listQuery) toMessageQuery() (repository.MessageQuery, error) {
	messageType, err := parseMessageTypeParam(q.MessageType)
	if err != nil {
		return repository.MessageQuery{}, err
	}
	return repository.MessageQuery{
		Filter:      q.Filter,
		Sorting:     q.Sorting,
		Reverse:     q.Reverse,
		MessageType: messageType,
		Skip:        q.Skip,
		Take:        q.Take,
	}, nil
}

func parseMessageTypeParam(s string) (*model.MessageType, error) {
	if s == "" {
		return nil, nil
	}
	t, ok := model.ParseMessageType(s)
	if !ok {
		return nil, fmt.Errorf("unknown message_type %q", s)
	}
	return &t, nil
}

// SendMessage 发送消息，发送者和租户取自令牌
func (h *MessageHandler) SendMessage(c *gin.Context) {
	identity := jwt.GetIdentity(c)
	if identity == nil {
		response.Unauthorized(c, "用户信息无效")
		return
	}

	var r sendMessageRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	messageType, err := parseMessageTypeParam(r.MessageType)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message := &model.ChatMessage{
		TenantID:     identity.TenantID,
		FormUserID:   identity.UserID,
		FormUserName: identity.Name,
		ToUserID:     r.ToUserID,
		GroupID:      r.GroupID,
		Content:      r.Content,
		IsAnonymous:  r.IsAnonymous,
	}
	if messageType != nil {
		message.MessageType = *messageType
	}

	if err := h.service.StoreMessage(c.Request.Context(), message); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "消息发送成功", message)
}

// GetGroupMessages 获取群聊消息
func (h *MessageHandler) GetGroupMessages(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	query, err := q.toMessageQuery()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tenantID := jwt.GetTenantID(c)
	messages, err := h.service.GetGroupMessages(c.Request.Context(), tenantID, groupID, query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	total, err := h.service.GetGroupMessageCount(c.Request.Context(), tenantID, groupID, query.Filter, query.MessageType)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, &response.PageResponse{Items: messages, TotalCount: total})
}

// GetGroupMessageCount 获取群聊消息数量
func (h *MessageHandler) GetGroupMessageCount(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	messageType, err := parseMessageTypeParam(c.Query("message_type"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	count, err := h.service.GetGroupMessageCount(c.Request.Context(), jwt.GetTenantID(c), groupID, c.Query("filter"), messageType)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}

// GetChatMessages 获取当前用户与 user_id 之间的私聊消息
func (h *MessageHandler) GetChatMessages(c *gin.Context) {
	otherUserID, ok := userIDParam(c)
	if !ok {
		return
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	query, err := q.toMessageQuery()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tenantID, userID := jwt.GetTenantID(c), jwt.GetUserID(c)
	messages, err := h.service.GetChatMessages(c.Request.Context(), tenantID, userID, otherUserID, query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	total, err := h.service.GetChatMessageCount(c.Request.Context(), tenantID, userID, otherUserID, query.Filter, query.MessageType)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, &response.PageResponse{Items: messages, TotalCount: total})
}

// GetChatMessageCount 获取私聊消息数量
func (h *MessageHandler) GetChatMessageCount(c *gin.Context) {
	otherUserID, ok := userIDParam(c)
	if !ok {
		return
	}
	messageType, err := parseMessageTypeParam(c.Query("message_type"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	count, err := h.service.GetChatMessageCount(c.Request.Context(), jwt.GetTenantID(c), jwt.GetUserID(c), otherUserID, c.Query("filter"), messageType)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}

// GetLastChatMessages 获取与每个好友的最近一条消息
func (h *MessageHandler) GetLastChatMessages(c *gin.Context) {
	take, _ := strconv.Atoi(c.Query("take"))
	reverse := c.DefaultQuery("reverse", "true") == "true"

	messages, err := h.service.GetLastChatMessagesPerFriend(c.Request.Context(), jwt.GetTenantID(c), jwt.GetUserID(c), c.Query("sorting"), reverse, take)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, messages)
}

func groupIDParam(c *gin.Context) (int64, bool) {
	groupID, err := strconv.ParseInt(c.Param("group_id"), 10, 64)
	if err != nil {
		response.FromError(c, fmt.Errorf("%w: %q", errcode.ErrInvalidGroupID, c.Param("group_id")))
		return 0, false
	}
	return groupID, true
}

func userIDParam(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "user_id 不是合法的uuid")
		return uuid.Nil, false
	}
	return userID, true
}
