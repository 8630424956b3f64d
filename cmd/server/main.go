package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"im-message/config"
	"im-message/internal/handler"
	"im-message/internal/model"
	"im-message/internal/repository"
	"im-message/internal/service"
	dbPkg "im-message/pkg/db"
	"im-message/pkg/idgen"
	"im-message/pkg/jwt"
	"im-message/pkg/logger"
	redisPkg "im-message/pkg/redis"
	"im-message/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== 消息服务启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Int64("snowflake_node", cfg.Snowflake.NodeID),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化数据库连接
	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(
		&model.UserMessage{},
		&model.GroupMessage{},
		&model.UserFriend{},
		&model.UserChatSetting{},
		&model.ChatGroup{},
		&model.GroupBlack{},
	); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 策略缓存（可选），Redis不可用时直接读库
	var decorators []repository.StoresDecorator
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := redisPkg.InitRedis(ctx, cfg.Redis)
		cancel()
		if err != nil {
			log.Warn("Redis连接失败，策略缓存已禁用", zap.Error(err))
		} else {
			defer redisPkg.Close()
			decorators = append(decorators, repository.WithPolicyCache(redisPkg.NewPolicyCache(client, cfg.Message.PolicyCacheTTL)))
			log.Info("策略缓存已启用", zap.Duration("ttl", cfg.Message.PolicyCacheTTL))
		}
	}

	// 3.3 初始化业务服务
	idGen, err := idgen.NewGenerator(cfg.Snowflake)
	if err != nil {
		log.Fatal("消息ID生成器初始化失败", zap.Error(err))
	}
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	uow := repository.NewUnitOfWork(db, decorators...)
	messageStore := service.NewMessageStore(uow, repository.NewMessageRepository(db), idGen, cfg.Message)
	messageHandler := handler.NewMessageHandler(messageStore)

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()
	router.Use(logger.RequestLogger())
	router.Use(logger.ErrorLoggerMiddleware())

	// 6. 设置路由
	setupBasicRoutes(router, cfg.Redis.Enabled)
	v1 := router.Group("/api/v1", jwtSvc.AuthMiddleware())
	messageHandler.RegisterRoutes(v1)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine, redisEnabled bool) {
	// 健康检查
	// 完整url为：http://localhost:8080/health
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok"}
		if err := dbPkg.HealthCheck(ctx); err != nil {
			status["database"] = "down"
		}
		if redisEnabled {
			status["redis"] = "ok"
			if err := redisPkg.HealthCheck(ctx); err != nil {
				status["redis"] = "down"
			}
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}
