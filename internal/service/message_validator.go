package service

import (
	"context"

	"im-message/internal/model"
	"im-message/internal/repository"
	"im-message/pkg/errcode"
)

// messageValidator 消息准入校验
// 校验按固定顺序进行，遇到第一条不满足的规则即返回，顺序决定了错误的优先级
// 仓储错误原样返回，不转换为业务错误
type messageValidator struct {
	stores repository.Stores
}

func newMessageValidator(stores repository.Stores) *messageValidator {
	return &messageValidator{stores: stores}
}

// validateUserMessage 私聊消息校验
//
//  1. 查询接收者通讯录中的发送者（无记录即非好友）
//  2. 查询接收者聊天设置
//  3. 有设置：不接收任何消息 > 非好友且非匿名 > 匿名但不允许匿名
//  4. 无设置：必须是好友
//  5. 最后检查拉黑，拉黑的好友在第3步中仍按好友处理
func (v *messageValidator) validateUserMessage(ctx context.Context, message *model.ChatMessage) error {
	if message.ToUserID == nil {
		return errcode.ErrRecipientMissing
	}
	toUserID := *message.ToUserID

	friend, err := v.stores.Friends.GetContact(ctx, message.TenantID, toUserID, message.FormUserID)
	if err != nil {
		return err
	}

	setting, err := v.stores.Settings.FindByUserID(ctx, message.TenantID, toUserID)
	if err != nil {
		return err
	}

	if setting != nil {
		if !setting.AllowReceiveMessage {
			return errcode.ErrRecipientRejectsAllMessages
		}
		if friend == nil && !message.IsAnonymous {
			return errcode.ErrRecipientRejectsNonFriendMessages
		}
		if message.IsAnonymous && !setting.AllowAnonymous {
			return errcode.ErrAnonymousNotAllowed
		}
	} else if friend == nil {
		// 没有设置记录时只接收好友消息，比显式设置更严格
		return errcode.ErrRecipientRejectsNonFriendMessages
	}

	if friend != nil && friend.Black {
		return errcode.ErrSenderBlockedByRecipient
	}

	return nil
}

// validateGroupMessage 群聊消息校验
// 黑名单检查先于群组策略，群组不存在由仓储返回 errcode.ErrGroupNotFound
func (v *messageValidator) validateGroupMessage(ctx context.Context, message *model.ChatMessage, groupID int64) error {
	blocked, err := v.stores.Groups.IsSenderBlocked(ctx, message.TenantID, groupID, message.FormUserID)
	if err != nil {
		return err
	}
	if blocked {
		return errcode.ErrSenderBlockedInGroup
	}

	group, err := v.stores.Groups.GetByID(ctx, message.TenantID, groupID)
	if err != nil {
		return err
	}

	if !group.AllowSendMessage {
		return errcode.ErrGroupMessagingDisabled
	}
	if message.IsAnonymous && !group.AllowAnonymous {
		return errcode.ErrGroupAnonymousNotAllowed
	}

	return nil
}
