package repository_test

import (
	"context"
	"errors"
	"testing"

	"im-message/internal/model"
	"im-message/internal/repository"
	"im-message/internal/repository/mocks"
	"im-message/pkg/errcode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakePolicyCache 内存缓存，err 非空时所有操作都失败
type fakePolicyCache struct {
	settings map[uuid.UUID]*model.UserChatSetting
	groups   map[int64]*model.ChatGroup
	err      error
}

func newFakePolicyCache() *fakePolicyCache {
	return &fakePolicyCache{settings: map[uuid.UUID]*model.UserChatSetting{}, groups: map[int64]*model.ChatGroup{}}
}

func (c *fakePolicyCache) GetChatSetting(_ context.Context, _ *uuid.UUID, userID uuid.UUID) (*model.UserChatSetting, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.settings[userID], nil
}

func (c *fakePolicyCache) SetChatSetting(_ context.Context, s *model.UserChatSetting) error {
	if c.err != nil {
		return c.err
	}
	c.settings[s.UserID] = s
	return nil
}

func (c *fakePolicyCache) GetGroup(_ context.Context, _ *uuid.UUID, groupID int64) (*model.ChatGroup, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.groups[groupID], nil
}

func (c *fakePolicyCache) SetGroup(_ context.Context, g *model.ChatGroup) error {
	if c.err != nil {
		return c.err
	}
	c.groups[g.GroupID] = g
	return nil
}

func cachedStores(ctrl *gomock.Controller, cache repository.PolicyCache) (repository.Stores, *mocks.MockChatSettingStore, *mocks.MockGroupStore) {
	settings := mocks.NewMockChatSettingStore(ctrl)
	groups := mocks.NewMockGroupStore(ctrl)
	stores := repository.WithPolicyCache(cache)(repository.Stores{Settings: settings, Groups: groups})
	return stores, settings, groups
}

func TestWithPolicyCache_ChatSetting(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := newFakePolicyCache()
	stores, settings, _ := cachedStores(ctrl, cache)
	user := uuid.New()
	setting := &model.UserChatSetting{UserID: user, AllowReceiveMessage: true}

	// 第二次命中缓存，不再查库
	settings.EXPECT().FindByUserID(gomock.Any(), gomock.Any(), user).Return(setting, nil).Times(1)

	for i := 0; i < 2; i++ {
		got, err := stores.Settings.FindByUserID(context.Background(), nil, user)
		require.NoError(t, err)
		assert.Equal(t, setting, got)
	}
}

func TestWithPolicyCache_MissingSettingNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := newFakePolicyCache()
	stores, settings, _ := cachedStores(ctrl, cache)
	user := uuid.New()

	settings.EXPECT().FindByUserID(gomock.Any(), gomock.Any(), user).Return(nil, nil).Times(2)

	for i := 0; i < 2; i++ {
		got, err := stores.Settings.FindByUserID(context.Background(), nil, user)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.Empty(t, cache.settings)
}

func TestWithPolicyCache_CacheFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := newFakePolicyCache()
	cache.err = errors.New("redis down")
	stores, settings, groups := cachedStores(ctrl, cache)
	user := uuid.New()

	settings.EXPECT().FindByUserID(gomock.Any(), gomock.Any(), user).Return(&model.UserChatSetting{UserID: user}, nil)
	groups.EXPECT().GetByID(gomock.Any(), gomock.Any(), int64(3)).Return(&model.ChatGroup{GroupID: 3, AllowSendMessage: true}, nil)

	setting, err := stores.Settings.FindByUserID(context.Background(), nil, user)
	require.NoError(t, err)
	assert.Equal(t, user, setting.UserID)

	group, err := stores.Groups.GetByID(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.True(t, group.AllowSendMessage)
}

func TestWithPolicyCache_Group(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := newFakePolicyCache()
	stores, _, groups := cachedStores(ctrl, cache)
	sender := uuid.New()

	groups.EXPECT().GetByID(gomock.Any(), gomock.Any(), int64(5)).Return(&model.ChatGroup{GroupID: 5}, nil).Times(1)
	groups.EXPECT().GetByID(gomock.Any(), gomock.Any(), int64(6)).Return(nil, errcode.ErrGroupNotFound).Times(2)
	// 黑名单不缓存
	groups.EXPECT().IsSenderBlocked(gomock.Any(), gomock.Any(), int64(5), sender).Return(true, nil).Times(2)

	for i := 0; i < 2; i++ {
		group, err := stores.Groups.GetByID(context.Background(), nil, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), group.GroupID)

		_, err = stores.Groups.GetByID(context.Background(), nil, 6)
		require.ErrorIs(t, err, errcode.ErrGroupNotFound)

		blocked, err := stores.Groups.IsSenderBlocked(context.Background(), nil, 5, sender)
		require.NoError(t, err)
		assert.True(t, blocked)
	}
}
