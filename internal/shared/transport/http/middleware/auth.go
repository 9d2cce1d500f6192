package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"SceneScript/internal/shared/security"
	"SceneScript/internal/shared/transport"
)

const ClaimsKey = "claims"

// Auth 校验 Authorization: Bearer <token> 或 ?token=<token>。
// issuer 未配置密钥时直接放行。
func Auth(issuer *security.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !issuer.Enabled() {
			c.Next()
			return
		}
		claims, err := issuer.ParseToken(TokenFrom(c.Request))
		if err != nil {
			transport.SetErrorReason(c.Request.Context(), "UNAUTHORIZED")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": transport.Unauthorized,
				"msg":  "未授权",
			})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// TokenFrom 先取 bearer 头，再取 token 查询参数；websocket 握手只能用后者。
func TokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
	}
	return r.URL.Query().Get("token")
}
