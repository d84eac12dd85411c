package preview

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GallicWars/internal/shared/logs"
	"GallicWars/modules/kit/logx"
	"GallicWars/modules/kit/tracex"
)

// cors 预览面只在本机或内网用，放开所有来源。
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// accessLog 统一写访问日志，请求级 ctx 带上 op 标记。
func accessLog() gin.HandlerFunc {
	log := logx.NewZapLogger(logs.Logger())
	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := tracex.WithOp(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		log.WithContext(ctx).Info("http access",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("cost", time.Since(start)))
	}
}
