package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"im-message/config"
	"im-message/internal/model"
	"im-message/internal/repository"
	"im-message/pkg/errcode"
	"im-message/pkg/jwt"
	"im-message/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageService struct {
	storeErr  error
	stored    *model.ChatMessage
	lastQuery repository.MessageQuery
	lastGroup int64
	lastPeer  uuid.UUID
	lastUser  uuid.UUID
	tenant    *uuid.UUID
	readErr   error
}

func (f *fakeMessageService) StoreMessage(_ context.Context, m *model.ChatMessage) error {
	f.stored = m
	if f.storeErr != nil {
		return f.storeErr
	}
	m.MessageID = "1001"
	m.SendTime = time.Now()
	return nil
}

func (f *fakeMessageService) GetGroupMessages(_ context.Context, tenantID *uuid.UUID, groupID int64, q repository.MessageQuery) ([]*model.ChatMessage, error) {
	f.tenant, f.lastGroup, f.lastQuery = tenantID, groupID, q
	return []*model.ChatMessage{{MessageID: "1", GroupID: "7"}}, f.readErr
}

func (f *fakeMessageService) GetGroupMessageCount(context.Context, *uuid.UUID, int64, string, *model.MessageType) (int64, error) {
	return 1, nil
}

func (f *fakeMessageService) GetChatMessages(_ context.Context, tenantID *uuid.UUID, send, recv uuid.UUID, q repository.MessageQuery) ([]*model.ChatMessage, error) {
	f.tenant, f.lastUser, f.lastPeer, f.lastQuery = tenantID, send, recv, q
	return []*model.ChatMessage{}, f.readErr
}

func (f *fakeMessageService) GetChatMessageCount(_ context.Context, _ *uuid.UUID, send, recv uuid.UUID, _ string, _ *model.MessageType) (int64, error) {
	f.lastUser, f.lastPeer = send, recv
	return 5, f.readErr
}

func (f *fakeMessageService) GetLastChatMessagesPerFriend(_ context.Context, _ *uuid.UUID, userID uuid.UUID, _ string, _ bool, _ int) ([]*model.LastChatMessage, error) {
	f.lastUser = userID
	return []*model.LastChatMessage{}, f.readErr
}

var testJWTConfig = config.JWTConfig{Secret: "handler-test-secret", Issuer: "im-message", ExpireTime: time.Hour}

func newTestRouter(svc MessageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1", jwt.NewJWTService(testJWTConfig).AuthMiddleware())
	NewMessageHandler(svc).RegisterRoutes(api)
	return r
}

func bearer(t *testing.T, userID uuid.UUID, name string, tenantID *uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewJWTService(testJWTConfig).GenerateToken(userID, name, tenantID)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(r http.Handler, method, path, auth, body string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSendMessage(t *testing.T) {
	svc := &fakeMessageService{}
	r := newTestRouter(svc)
	sender, recipient, tenant := uuid.New(), uuid.New(), uuid.New()

	body := `{"to_user_id":"` + recipient.String() + `","content":"hello","message_type":"image","is_anonymous":true}`
	w, resp := doRequest(r, http.MethodPost, "/api/v1/messages", bearer(t, sender, "alice", &tenant), body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	require.NotNil(t, svc.stored)
	assert.Equal(t, sender, svc.stored.FormUserID)
	assert.Equal(t, "alice", svc.stored.FormUserName)
	assert.Equal(t, &tenant, svc.stored.TenantID)
	assert.Equal(t, &recipient, svc.stored.ToUserID)
	assert.Equal(t, model.MessageTypeImage, svc.stored.MessageType)
	assert.True(t, svc.stored.IsAnonymous)
	assert.Contains(t, w.Body.String(), `"message_id":"1001"`)
}

func TestSendMessage_Errors(t *testing.T) {
	sender := uuid.New()

	tests := []struct {
		name       string
		storeErr   error
		body       string
		auth       bool
		wantCode   int
		wantReason string
	}{
		{name: "missing token", body: `{"content":"x"}`, wantCode: http.StatusUnauthorized},
		{name: "missing content", auth: true, body: `{"group_id":"1"}`, wantCode: http.StatusBadRequest},
		{name: "unknown message type", auth: true, body: `{"group_id":"1","content":"x","message_type":"sticker"}`, wantCode: http.StatusBadRequest},
		{name: "rejected", auth: true, body: `{"group_id":"1","content":"x"}`, storeErr: errcode.ErrSenderBlockedInGroup, wantCode: http.StatusForbidden, wantReason: string(errcode.SenderBlockedInGroup)},
		{name: "group not found", auth: true, body: `{"group_id":"1","content":"x"}`, storeErr: errcode.ErrGroupNotFound, wantCode: http.StatusNotFound, wantReason: string(errcode.GroupNotFound)},
		{name: "invalid group id", auth: true, body: `{"group_id":"abc","content":"x"}`, storeErr: errcode.ErrInvalidGroupID, wantCode: http.StatusBadRequest, wantReason: string(errcode.InvalidGroupID)},
		{name: "infrastructure", auth: true, body: `{"group_id":"1","content":"x"}`, storeErr: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeMessageService{storeErr: tt.storeErr})
			auth := ""
			if tt.auth {
				auth = bearer(t, sender, "bob", nil)
			}

			_, resp := doRequest(r, http.MethodPost, "/api/v1/messages", auth, tt.body)

			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.Empty(t, resp.Error, "details are hidden outside debug mode")
		})
	}
}

func TestGetGroupMessages(t *testing.T) {
	svc := &fakeMessageService{}
	r := newTestRouter(svc)

	_, resp := doRequest(r, http.MethodGet, "/api/v1/groups/7/messages?sorting=sendTime&reverse=true&skip=20&take=10&filter=hi&message_type=text", bearer(t, uuid.New(), "a", nil), "")

	require.Equal(t, 0, resp.Code)
	assert.Equal(t, int64(7), svc.lastGroup)
	assert.Nil(t, svc.tenant)
	assert.Equal(t, "sendTime", svc.lastQuery.Sorting)
	assert.True(t, svc.lastQuery.Reverse)
	assert.Equal(t, 20, svc.lastQuery.Skip)
	assert.Equal(t, 10, svc.lastQuery.Take)
	assert.Equal(t, "hi", svc.lastQuery.Filter)
	require.NotNil(t, svc.lastQuery.MessageType)
	assert.Equal(t, model.MessageTypeText, *svc.lastQuery.MessageType)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, data["total_count"])
}

func TestListMessages_DefaultsToNewestFirst(t *testing.T) {
	svc := &fakeMessageService{}
	r := newTestRouter(svc)
	auth := bearer(t, uuid.New(), "a", nil)
	peer := uuid.New()

	paths := []string{"/api/v1/groups/7/messages", "/api/v1/chats/" + peer.String() + "/messages"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			svc.lastQuery = repository.MessageQuery{}
			_, resp := doRequest(r, http.MethodGet, path, auth, "")
			require.Equal(t, 0, resp.Code)
			assert.Empty(t, svc.lastQuery.Sorting)
			assert.True(t, svc.lastQuery.Reverse)

			_, resp = doRequest(r, http.MethodGet, path+"?reverse=false", auth, "")
			require.Equal(t, 0, resp.Code)
			assert.False(t, svc.lastQuery.Reverse)
		})
	}
}

func TestGetGroupMessages_InvalidGroupID(t *testing.T) {
	r := newTestRouter(&fakeMessageService{})

	_, resp := doRequest(r, http.MethodGet, "/api/v1/groups/abc/messages", bearer(t, uuid.New(), "a", nil), "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, string(errcode.InvalidGroupID), resp.Reason)
}

func TestGetChatMessages(t *testing.T) {
	svc := &fakeMessageService{}
	r := newTestRouter(svc)
	me, peer := uuid.New(), uuid.New()

	_, resp := doRequest(r, http.MethodGet, "/api/v1/chats/"+peer.String()+"/messages", bearer(t, me, "me", nil), "")
	require.Equal(t, 0, resp.Code)
	assert.Equal(t, me, svc.lastUser)
	assert.Equal(t, peer, svc.lastPeer)

	_, resp = doRequest(r, http.MethodGet, "/api/v1/chats/not-a-uuid/messages", bearer(t, me, "me", nil), "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetChatMessageCount(t *testing.T) {
	svc := &fakeMessageService{}
	r := newTestRouter(svc)
	me, peer := uuid.New(), uuid.New()

	_, resp := doRequest(r, http.MethodGet, "/api/v1/chats/"+peer.String()+"/messages/count", bearer(t, me, "me", nil), "")

	require.Equal(t, 0, resp.Code)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 5, data["count"])
	assert.Equal(t, me, svc.lastUser)
}

func TestGetLastChatMessages(t *testing.T) {
	svc := &fakeMessageService{}
	r := newTestRouter(svc)
	me := uuid.New()

	_, resp := doRequest(r, http.MethodGet, "/api/v1/chats/last?take=5", bearer(t, me, "me", nil), "")
	require.Equal(t, 0, resp.Code)
	assert.Equal(t, me, svc.lastUser)

	svc.readErr = errors.New("timeout")
	_, resp = doRequest(r, http.MethodGet, "/api/v1/chats/last", bearer(t, me, "me", nil), "")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
