package middleware

import (
	"HyperAdmin/pkg/context"
	"HyperAdmin/pkg/log"
	"net/http"
	"strings"
	"time"

	"HyperAdmin/pkg/jwt"
	"HyperAdmin/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	rotateBuffer = 5 * time.Minute
	accessExpire = 2 * time.Hour
)

// Auth 校验管理员 access token，并把原 token 留给后续转发到后端 API
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		if claims.AdminID == 0 {
			response.Abort(c, http.StatusUnauthorized, "token 缺少 admin_id")
			return
		}

		// 续签的 token 只下发给浏览器，透传给后端的始终是原 token
		if jwt.ShouldRotate(claims, rotateBuffer) {
			newToken, err := jwt.GenerateToken(secret, *claims, accessExpire)
			if err != nil {
				log.L.Warn("rotate access token", zap.Uint64("admin_id", claims.AdminID), zap.Error(err))
			} else {
				c.Header("X-New-Access-Token", newToken)
			}
		}

		c.Set(context.CtxAdminID, claims.AdminID)
		c.Set(context.CtxAdminName, claims.Name)
		c.Set(context.CtxToken, parts[1])

		c.Next()
	}
}
