package jwt

import (
	"strings"

	"im-message/pkg/logger"
	"im-message/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// ContextIdentityKey 调用者身份在gin.Context中的键名
	ContextIdentityKey = "identity"
	// ContextClaimsKey JWT声明在gin.Context中的键名
	ContextClaimsKey = "jwt_claims"
)

// AuthMiddleware JWT认证中间件
// 从请求头中提取Authorization: Bearer <token>
// 验证token并将调用者身份存入gin.Context
func (s *JWTService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "缺少Authorization请求头")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Authorization格式错误，应为Bearer <token>")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			response.Unauthorized(c, "token不能为空")
			c.Abort()
			return
		}

		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			logger.Warn("JWT验证失败", zap.Error(err), zap.String("path", c.Request.URL.Path))
			response.Unauthorized(c, "token无效或已过期")
			c.Abort()
			return
		}

		identity, err := claims.Identity()
		if err != nil {
			logger.Warn("JWT身份无效", zap.Error(err), zap.String("subject", claims.Subject))
			response.Unauthorized(c, "用户信息无效")
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Set(ContextClaimsKey, claims)

		logger.Debug("用户访问接口",
			zap.String("user_id", identity.UserID.String()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// GetIdentity 从gin.Context中获取调用者身份
func GetIdentity(c *gin.Context) *Identity {
	if v, exists := c.Get(ContextIdentityKey); exists {
		if identity, ok := v.(*Identity); ok {
			return identity
		}
	}
	return nil
}

// GetUserID 从gin.Context中获取用户ID
func GetUserID(c *gin.Context) uuid.UUID {
	if identity := GetIdentity(c); identity != nil {
		return identity.UserID
	}
	return uuid.Nil
}

// GetUsername 从gin.Context中获取用户名
func GetUsername(c *gin.Context) string {
	if identity := GetIdentity(c); identity != nil {
		return identity.Name
	}
	return ""
}

// GetTenantID 从gin.Context中获取租户ID，宿主用户返回nil
func GetTenantID(c *gin.Context) *uuid.UUID {
	if identity := GetIdentity(c); identity != nil {
		return identity.TenantID
	}
	return nil
}
