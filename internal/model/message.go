package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MessageType 消息类型
type MessageType int

const (
	MessageTypeText     MessageType = 0
	MessageTypeImage    MessageType = 10
	MessageTypeLink     MessageType = 20
	MessageTypeVideo    MessageType = 30
	MessageTypeVoice    MessageType = 40
	MessageTypeFile     MessageType = 50
	MessageTypeNotifier MessageType = 100
)

var messageTypeNames = map[MessageType]string{
	MessageTypeText:     "text",
	MessageTypeImage:    "image",
	MessageTypeLink:     "link",
	MessageTypeVideo:    "video",
	MessageTypeVoice:    "voice",
	MessageTypeFile:     "file",
	MessageTypeNotifier: "notifier",
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// Valid 是否为已知的消息类型
func (t MessageType) Valid() bool {
	_, ok := messageTypeNames[t]
	return ok
}

// ParseMessageType 解析消息类型，支持名称（大小写不敏感）和数值
func ParseMessageType(s string) (MessageType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range messageTypeNames {
		if name == s {
			return t, true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && MessageType(n).Valid() {
		return MessageType(n), true
	}
	return 0, false
}

// ChatMessage 聊天消息传输对象（不直接持久化）
// GroupID 非空表示群聊消息，否则按 ToUserID 私聊
// MessageID 为输出字段，仅在存储成功后写入
type ChatMessage struct {
	TenantID     *uuid.UUID  `json:"tenant_id,omitempty"`
	FormUserID   uuid.UUID   `json:"form_user_id"`
	FormUserName string      `json:"form_user_name"`
	ToUserID     *uuid.UUID  `json:"to_user_id,omitempty"`
	GroupID      string      `json:"group_id,omitempty"`
	Content      string      `json:"content"`
	MessageType  MessageType `json:"message_type"`
	IsAnonymous  bool        `json:"is_anonymous"`
	MessageID    string      `json:"message_id,omitempty"`
	SendTime     time.Time   `json:"send_time"`
}

// IsGroupMessage 是否为群聊消息（群ID优先于接收者）
func (m *ChatMessage) IsGroupMessage() bool {
	return strings.TrimSpace(m.GroupID) != ""
}

// UserMessage 私聊消息
// MessageID 由雪花ID生成器分配，创建后不可变
type UserMessage struct {
	MessageID     int64       `gorm:"primaryKey;autoIncrement:false;comment:消息ID"`
	TenantID      *uuid.UUID  `gorm:"type:char(36);index;comment:租户ID"`
	FormUserID    uuid.UUID   `gorm:"type:char(36);not null;index;comment:发送者ID"`
	FormUserName  string      `gorm:"type:varchar(64);not null;comment:发送者名称"`
	ReceiveUserID uuid.UUID   `gorm:"type:char(36);not null;index;comment:接收者ID"`
	Content       string      `gorm:"type:text;not null;comment:消息内容"`
	MessageType   MessageType `gorm:"type:int;not null;default:0;comment:消息类型"`
	CreatedAt     time.Time   `gorm:"comment:发送时间"`
}

func (UserMessage) TableName() string { return "user_message" }

// NewUserMessage 创建私聊消息
func NewUserMessage(id int64, tenantID *uuid.UUID, formUserID uuid.UUID, formUserName, content string, messageType MessageType) *UserMessage {
	return &UserMessage{
		MessageID:    id,
		TenantID:     tenantID,
		FormUserID:   formUserID,
		FormUserName: formUserName,
		Content:      content,
		MessageType:  messageType,
	}
}

// SendToUser 设置接收用户
func (m *UserMessage) SendToUser(userID uuid.UUID) {
	m.ReceiveUserID = userID
}

// ToChatMessage 转换为传输对象
func (m *UserMessage) ToChatMessage() *ChatMessage {
	to := m.ReceiveUserID
	return &ChatMessage{
		TenantID:     m.TenantID,
		FormUserID:   m.FormUserID,
		FormUserName: m.FormUserName,
		ToUserID:     &to,
		Content:      m.Content,
		MessageType:  m.MessageType,
		MessageID:    strconv.FormatInt(m.MessageID, 10),
		SendTime:     m.CreatedAt,
	}
}

// GroupMessage 群聊消息
type GroupMessage struct {
	MessageID    int64       `gorm:"primaryKey;autoIncrement:false;comment:消息ID"`
	TenantID     *uuid.UUID  `gorm:"type:char(36);index;comment:租户ID"`
	FormUserID   uuid.UUID   `gorm:"type:char(36);not null;index;comment:发送者ID"`
	FormUserName string      `gorm:"type:varchar(64);not null;comment:发送者名称"`
	GroupID      int64       `gorm:"not null;index;comment:群ID"`
	Content      string      `gorm:"type:text;not null;comment:消息内容"`
	MessageType  MessageType `gorm:"type:int;not null;default:0;comment:消息类型"`
	CreatedAt    time.Time   `gorm:"comment:发送时间"`
}

func (GroupMessage) TableName() string { return "group_message" }

// NewGroupMessage 创建群聊消息
func NewGroupMessage(id int64, tenantID *uuid.UUID, formUserID uuid.UUID, formUserName, content string, messageType MessageType) *GroupMessage {
	return &GroupMessage{
		MessageID:    id,
		TenantID:     tenantID,
		FormUserID:   formUserID,
		FormUserName: formUserName,
		Content:      content,
		MessageType:  messageType,
	}
}

// SendToGroup 设置目标群组
func (m *GroupMessage) SendToGroup(groupID int64) {
	m.GroupID = groupID
}

// ToChatMessage 转换为传输对象
func (m *GroupMessage) ToChatMessage() *ChatMessage {
	return &ChatMessage{
		TenantID:     m.TenantID,
		FormUserID:   m.FormUserID,
		FormUserName: m.FormUserName,
		GroupID:      strconv.FormatInt(m.GroupID, 10),
		Content:      m.Content,
		MessageType:  m.MessageType,
		MessageID:    strconv.FormatInt(m.MessageID, 10),
		SendTime:     m.CreatedAt,
	}
}

// LastChatMessage 与某个好友的最近一条私聊消息
type LastChatMessage struct {
	MessageID    int64       `json:"message_id,string"`
	FormUserID   uuid.UUID   `json:"form_user_id"`
	FormUserName string      `json:"form_user_name"`
	ToUserID     uuid.UUID   `json:"to_user_id"`
	Content      string      `json:"content"`
	MessageType  MessageType `json:"message_type"`
	SendTime     time.Time   `json:"send_time"`
}
