package model

import (
	"time"

	"github.com/google/uuid"
)

// UserChatSetting 用户聊天设置
// 用户没有设置记录时按"仅好友、不允许匿名"处理

type UserChatSetting struct {
	ID                  uint       `gorm:"primaryKey" json:"-"`
	TenantID            *uuid.UUID `gorm:"type:char(36);index;comment:租户ID" json:"tenant_id,omitempty"`
	UserID              uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex;comment:用户ID" json:"user_id"`
	AllowAnonymous      bool       `gorm:"default:false;comment:是否允许匿名消息" json:"allow_anonymous"`
	AllowReceiveMessage bool       `gorm:"default:true;comment:是否接收消息" json:"allow_receive_message"`
	AllowSendMessage    bool       `gorm:"default:true;comment:是否允许发送消息" json:"allow_send_message"`
	UpdatedAt           time.Time  `gorm:"comment:更新时间" json:"updated_at"`
}

func (UserChatSetting) TableName() string { return "user_chat_setting" }

// ChatGroup 群组（只读取消息相关的策略字段）
type ChatGroup struct {
	GroupID          int64      `gorm:"primaryKey;autoIncrement:false;comment:群ID" json:"group_id"`
	TenantID         *uuid.UUID `gorm:"type:char(36);index;comment:租户ID" json:"tenant_id,omitempty"`
	Name             string     `gorm:"type:varchar(64);not null;comment:群名称" json:"name"`
	AdminUserID      uuid.UUID  `gorm:"type:char(36);comment:群主ID" json:"admin_user_id"`
	AllowAnonymous   bool       `gorm:"default:false;comment:是否允许匿名发言" json:"allow_anonymous"`
	AllowSendMessage bool       `gorm:"default:true;comment:是否允许发言" json:"allow_send_message"`
	UpdatedAt        time.Time  `gorm:"comment:更新时间" json:"updated_at"`
}

func (ChatGroup) TableName() string { return "chat_group" }

// GroupBlack 群组黑名单
type GroupBlack struct {
	ID           uint       `gorm:"primaryKey"`
	TenantID     *uuid.UUID `gorm:"type:char(36);index;comment:租户ID"`
	GroupID      int64      `gorm:"not null;index:idx_group_black,priority:1;comment:群ID"`
	ShieldUserID uuid.UUID  `gorm:"type:char(36);not null;index:idx_group_black,priority:2;comment:被拉黑用户ID"`
	CreatedAt    time.Time  `gorm:"comment:拉黑时间"`
}

func (GroupBlack) TableName() string { return "group_black" }
