package errcode

import "errors"

// Code 业务错误类型
type Code string

// 输入错误
const (
	RecipientMissing Code = "Message:RecipientMissing"
	InvalidGroupID   Code = "Message:InvalidGroupId"
)

// 私聊拒绝
const (
	RecipientRejectsAllMessages       Code = "Message:RecipientRejectsAllMessages"
	RecipientRejectsNonFriendMessages Code = "Message:RecipientRejectsNonFriendMessages"
	AnonymousNotAllowed               Code = "Message:AnonymousNotAllowed"
	SenderBlockedByRecipient          Code = "Message:SenderBlockedByRecipient"
)

// 群聊拒绝
const (
	SenderBlockedInGroup     Code = "Message:SenderBlockedInGroup"
	GroupNotFound            Code = "Message:GroupNotFound"
	GroupMessagingDisabled   Code = "Message:GroupMessagingDisabled"
	GroupAnonymousNotAllowed Code = "Message:GroupAnonymousNotAllowed"
)

// Error 业务错误，Code 是契约的一部分，Message 仅用于展示
type Error struct {
	Code    Code
	Message string
}

// New 创建业务错误
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Is 按Code比较，使 errors.Is 对不同实例同样生效
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrRecipientMissing = New(RecipientMissing, "recipient user is required")
	ErrInvalidGroupID   = New(InvalidGroupID, "group id is not a valid integer")

	ErrRecipientRejectsAllMessages       = New(RecipientRejectsAllMessages, "recipient does not accept any messages")
	ErrRecipientRejectsNonFriendMessages = New(RecipientRejectsNonFriendMessages, "recipient only accepts messages from friends")
	ErrAnonymousNotAllowed               = New(AnonymousNotAllowed, "recipient does not accept anonymous messages")
	ErrSenderBlockedByRecipient          = New(SenderBlockedByRecipient, "sender has been blocked by recipient")

	ErrSenderBlockedInGroup     = New(SenderBlockedInGroup, "sender has been blocked in group")
	ErrGroupNotFound            = New(GroupNotFound, "group not found")
	ErrGroupMessagingDisabled   = New(GroupMessagingDisabled, "group does not allow sending messages")
	ErrGroupAnonymousNotAllowed = New(GroupAnonymousNotAllowed, "group does not allow anonymous messages")
)

// CodeOf 提取错误链上的业务错误类型，非业务错误返回空串
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsBusiness 判断是否为业务错误
func IsBusiness(err error) bool {
	return CodeOf(err) != ""
}

// IsInputError 判断是否为调用方输入错误
func IsInputError(err error) bool {
	switch CodeOf(err) {
	case RecipientMissing, InvalidGroupID:
		return true
	}
	return false
}
