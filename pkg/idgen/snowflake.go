package idgen

import (
	"fmt"
	"time"

	"im-message/config"

	"github.com/bwmarrin/snowflake"
)

// Generator 雪花ID生成器
// 同一节点内并发安全、单调递增；不同实例需配置不同的节点编号
type Generator struct {
	node *snowflake.Node
}

// NewGenerator 创建ID生成器
// snowflake.Epoch 是包级变量，进程内所有节点共享同一起始时间
func NewGenerator(cfg config.SnowflakeConfig) (*Generator, error) {
	if cfg.Epoch > 0 {
		snowflake.Epoch = cfg.Epoch
	}
	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		return nil, fmt.Errorf("创建雪花节点失败: %w", err)
	}
	return &Generator{node: node}, nil
}

// Create 生成下一个ID
func (g *Generator) Create() int64 {
	return g.node.Generate().Int64()
}

// Time 从ID中解析生成时间
func Time(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}
