package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classtable/backend/config"
	"classtable/backend/internal/api/handler"
	"classtable/backend/internal/api/middleware"
	"classtable/backend/pkg/jwt"
	"classtable/backend/pkg/redis"
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
		// 认证模块（无需认证；登录/注册加限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/register", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.POST("", h.Course.AddCourse)
				courses.DELETE("", h.Course.RemoveCourse)
				courses.GET("", h.Course.ListWeek)
			}

			// 课表视图模块
			authorized.GET("/timetable", h.Timetable.GetWeekGrid)

			// 导出模块
			authorized.GET("/export/timetable", h.Export.ExportWeek)
		}
	}

	return r
}
