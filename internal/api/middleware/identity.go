package middleware

import (
	"strings"

	"edufleex-go/internal/api/response"
	"edufleex-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyTokenSubject = "tokenSubject"
	ContextKeyDefaultUser  = "defaultUserID"
)

// Identity 识别调用方身份。
// 携带 Bearer Token 时必须校验通过（否则 401），其 Subject 作为用户标识；
// 未携带时由 Handler 使用请求中的 userId，再退回到默认用户。
func Identity(secret, issuer, defaultUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDefaultUser, defaultUserID)

		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "认证令牌格式错误")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token, secret, issuer)
		if err != nil {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		c.Set(ContextKeyTokenSubject, claims.Subject)
		c.Next()
	}
}

// TokenSubject 返回已校验令牌中的用户标识
func TokenSubject(c *gin.Context) (string, bool) {
	subject := c.GetString(ContextKeyTokenSubject)
	return subject, subject != ""
}

// ResolveUserID 确定本次请求的用户：令牌 > 请求参数 > 默认用户
func ResolveUserID(c *gin.Context, requested string) string {
	if subject, ok := TokenSubject(c); ok {
		return subject
	}
	if requested = strings.TrimSpace(requested); requested != "" {
		return requested
	}
	return c.GetString(ContextKeyDefaultUser)
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
