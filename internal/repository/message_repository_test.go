package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"im-message/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		NamingStrategy:         schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	return db, mock
}

var userMessageColumns = []string{"message_id", "tenant_id", "form_user_id", "form_user_name", "receive_user_id", "content", "message_type", "created_at"}

func TestMessageRepository_InsertUserMessage(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)

	tenant := uuid.New()
	msg := model.NewUserMessage(42, &tenant, uuid.New(), "alice", "hello", model.MessageTypeText)
	msg.SendToUser(uuid.New())
	msg.CreatedAt = time.Now()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `user_message`")).
		WithArgs(int64(42), sqlmock.AnyArg(), sqlmock.AnyArg(), "alice", sqlmock.AnyArg(), "hello", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.InsertUserMessage(context.Background(), msg))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_InsertGroupMessageError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)

	msg := model.NewGroupMessage(7, nil, uuid.New(), "bob", "hi", model.MessageTypeText)
	msg.SendToGroup(100)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `group_message`")).WillReturnError(sql.ErrConnDone)

	err := repo.InsertGroupMessage(context.Background(), msg)
	require.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_GetGroupMessages(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	sender := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"message_id", "tenant_id", "form_user_id", "form_user_name", "group_id", "content", "message_type", "created_at"}).
		AddRow(int64(2), nil, sender.String(), "alice", int64(9), "second", 0, now).
		AddRow(int64(1), nil, sender.String(), "alice", int64(9), "first", 0, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `group_message` WHERE tenant_id IS NULL AND group_id = ? AND ((content LIKE ? OR form_user_name LIKE ?)) ORDER BY `created_at` DESC,`message_id` DESC LIMIT ? OFFSET ?")).
		WithArgs(int64(9), `%50\%%`, `%50\%%`, 20, 40).
		WillReturnRows(rows)

	messages, err := repo.GetGroupMessages(context.Background(), nil, 9, MessageQuery{
		Filter:  "50%",
		Sorting: SortBySendTime,
		Reverse: true,
		Skip:    40,
		Take:    20,
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, int64(2), messages[0].MessageID)
	assert.Equal(t, sender, messages[0].FormUserID)
	assert.Nil(t, messages[0].TenantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_UnknownSortFallsBackToMessageID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	tenant := uuid.New()

	mock.ExpectQuery("SELECT \\* FROM `group_message` WHERE tenant_id = \\? AND group_id = \\? ORDER BY `message_id` LIMIT \\?").
		WithArgs(sqlmock.AnyArg(), int64(9), 10).
		WillReturnRows(sqlmock.NewRows([]string{"message_id"}))

	messages, err := repo.GetGroupMessages(context.Background(), &tenant, 9, MessageQuery{Sorting: "content; DROP TABLE", Take: 10})
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_GetUserMessages(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	a, b := uuid.New(), uuid.New()
	image := model.MessageTypeImage

	rows := sqlmock.NewRows(userMessageColumns).
		AddRow(int64(5), nil, b.String(), "bob", a.String(), "pic", int(image), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user_message` WHERE tenant_id IS NULL AND (((form_user_id = ? AND receive_user_id = ?) OR (form_user_id = ? AND receive_user_id = ?))) AND message_type = ? ORDER BY `message_id` DESC LIMIT ?")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), int(image), 10).
		WillReturnRows(rows)

	messages, err := repo.GetUserMessages(context.Background(), nil, a, b, MessageQuery{
		Sorting:     SortByMessageID,
		Reverse:     true,
		MessageType: &image,
		Take:        10,
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, a, messages[0].ReceiveUserID)
	assert.Equal(t, model.MessageTypeImage, messages[0].MessageType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `group_message` WHERE tenant_id IS NULL AND group_id = \\?").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `user_message` WHERE tenant_id IS NULL AND .*content LIKE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	groupCount, err := repo.GetGroupMessageCount(context.Background(), nil, 3, "  ", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), groupCount)

	userCount, err := repo.GetUserMessageCount(context.Background(), nil, uuid.New(), uuid.New(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), userCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_GetLastMessagesByFriend(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	me, friend := uuid.New(), uuid.New()
	sent := time.Now()

	rows := sqlmock.NewRows(userMessageColumns).
		AddRow(int64(30), nil, friend.String(), "friend", me.String(), "latest", 0, sent)

	mock.ExpectQuery("SELECT .* FROM `user_message` " + regexp.QuoteMeta("JOIN (SELECT CASE WHEN form_user_id = ? THEN receive_user_id ELSE form_user_id END AS partner_id, MAX(message_id) AS last_id FROM `user_message` WHERE tenant_id IS NULL AND ((form_user_id = ? OR receive_user_id = ?)) GROUP BY `partner_id`) AS latest ON user_message.message_id = latest.last_id ORDER BY `created_at` DESC,`message_id` DESC LIMIT ?")).
		WillReturnRows(rows)

	last, err := repo.GetLastMessagesByFriend(context.Background(), nil, me, "", true, 5)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, int64(30), last[0].MessageID)
	assert.Equal(t, friend, last[0].FormUserID)
	assert.Equal(t, me, last[0].ToUserID)
	assert.Equal(t, "latest", last[0].Content)
	assert.WithinDuration(t, sent, last[0].SendTime, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSortColumn(t *testing.T) {
	assert.Equal(t, "message_id", sortColumn("messageId", "x"))
	assert.Equal(t, "created_at", sortColumn(" SENDTIME ", "x"))
	assert.Equal(t, "form_user_name", sortColumn("formUserName", "x"))
	assert.Equal(t, "message_type", sortColumn("messageType", "x"))
	assert.Equal(t, "x", sortColumn("content", "x"))
}
