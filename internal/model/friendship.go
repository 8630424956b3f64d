package model

import (
	"time"

	"github.com/google/uuid"
)

// UserFriend 好友关系（单向记录，UserID 的通讯录中包含 FriendID）
// Black 表示 UserID 已拉黑 FriendID，拉黑后记录仍然存在

type UserFriend struct {
	ID        uint       `gorm:"primaryKey"`
	TenantID  *uuid.UUID `gorm:"type:char(36);index;comment:租户ID"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;index:idx_user_friend,priority:1;comment:用户ID"`
	FriendID  uuid.UUID  `gorm:"type:char(36);not null;index:idx_user_friend,priority:2;comment:好友ID"`
	Black     bool       `gorm:"default:false;comment:是否拉黑"`
	CreatedAt time.Time  `gorm:"comment:创建时间"`
	UpdatedAt time.Time  `gorm:"comment:更新时间"`
}

func (UserFriend) TableName() string { return "user_friend" }
