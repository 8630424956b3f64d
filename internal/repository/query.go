package repository

import (
	"strings"

	"im-message/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 排序字段
const (
	SortByMessageID    = "messageId"
	SortBySendTime     = "sendTime"
	SortByFormUserName = "formUserName"
	SortByMessageType  = "messageType"
)

// MessageQuery 分页查询参数
type MessageQuery struct {
	Filter      string             // 内容或发送者名称模糊匹配
	Sorting     string             // 排序字段，未知字段按消息ID排序
	Reverse     bool               // true 为倒序
	MessageType *model.MessageType // 为空表示不限类型
	Skip        int
	Take        int
}

var sortColumns = map[string]string{
	strings.ToLower(SortByMessageID):    "message_id",
	strings.ToLower(SortBySendTime):     "created_at",
	strings.ToLower(SortByFormUserName): "form_user_name",
	strings.ToLower(SortByMessageType):  "message_type",
}

// sortColumn 将排序字段映射为列名，只接受白名单字段
func sortColumn(sorting, fallback string) string {
	if col, ok := sortColumns[strings.ToLower(strings.TrimSpace(sorting))]; ok {
		return col
	}
	return fallback
}

// tenantScope 按租户过滤
func tenantScope(tenantID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == nil {
			return db.Where("tenant_id IS NULL")
		}
		return db.Where("tenant_id = ?", *tenantID)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterScope 内容/类型过滤
func filterScope(filter string, messageType *model.MessageType) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter = strings.TrimSpace(filter); filter != "" {
			like := "%" + likeEscaper.Replace(filter) + "%"
			db = db.Where("(content LIKE ? OR form_user_name LIKE ?)", like, like)
		}
		if messageType != nil {
			db = db.Where("message_type = ?", *messageType)
		}
		return db
	}
}

// pageScope 排序与分页
func pageScope(sorting string, reverse bool, skip, take int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col := sortColumn(sorting, "message_id")
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: reverse})
		if col != "message_id" {
			// 同值时按消息ID保证分页稳定
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "message_id"}, Desc: reverse})
		}
		if skip > 0 {
			db = db.Offset(skip)
		}
		if take > 0 {
			db = db.Limit(take)
		}
		return db
	}
}
