package repository

import (
	"context"

	"gorm.io/gorm"
)

// StoresDecorator 在仓储外包一层（例如缓存）
type StoresDecorator func(Stores) Stores

// NewStores 创建绑定到 db 的仓储集合，db 可以是事务
func NewStores(db *gorm.DB, decorators ...StoresDecorator) Stores {
	stores := Stores{
		Friends:  NewFriendRepository(db),
		Groups:   NewGroupRepository(db),
		Settings: NewChatSettingRepository(db),
		Messages: NewMessageRepository(db),
	}
	for _, decorate := range decorators {
		stores = decorate(stores)
	}
	return stores
}

// GormUnitOfWork 基于数据库事务的工作单元
type GormUnitOfWork struct {
	db         *gorm.DB
	decorators []StoresDecorator
}

// NewUnitOfWork 创建工作单元
func NewUnitOfWork(db *gorm.DB, decorators ...StoresDecorator) *GormUnitOfWork {
	return &GormUnitOfWork{db: db, decorators: decorators}
}

// Do 在一个事务内执行 fn，fn 返回错误或 panic 时回滚
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(stores Stores) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx, u.decorators...))
	})
}
