package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ChristianMThomas/Timenest/config"
	"github.com/ChristianMThomas/Timenest/internal/api/handler"
	"github.com/ChristianMThomas/Timenest/internal/api/middleware"
	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/pkg/jwt"
	"github.com/ChristianMThomas/Timenest/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public auth routes, rate limited against credential stuffing
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			companies := authorized.Group("/companies")
			{
				companies.POST("", h.Company.Create)
				companies.POST("/join", h.Company.Join)
				companies.GET("/mine", h.Company.GetMine)
			}

			executive := middleware.RoleAuth(model.RoleExecutive.String())

			workAreas := authorized.Group("/work-areas")
			{
				workAreas.GET("", h.WorkArea.List)
				workAreas.GET("/:id", h.WorkArea.Get)
				workAreas.POST("/:id/validate", h.WorkArea.Validate)
				workAreas.POST("", executive, h.WorkArea.Create)
				workAreas.PATCH("/:id", executive, h.WorkArea.Update)
				workAreas.DELETE("/:id", executive, h.WorkArea.Delete)
			}

			shifts := authorized.Group("/shifts")
			{
				shifts.POST("/start", h.Shift.Start)
				shifts.POST("/end", h.Shift.End)
				shifts.POST("/heartbeat", h.Shift.Heartbeat)
				shifts.GET("/active", h.Shift.Active)
				shifts.GET("", h.Shift.ListMine)
				shifts.GET("/company", executive, h.Shift.ListCompany)
				shifts.POST("/check", executive, h.Shift.TriggerCheck)
			}

			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListUnread)
				notifications.GET("/count", h.Notification.CountUnread)
				notifications.POST("/:id/read", h.Notification.MarkRead)
			}

			export := authorized.Group("/export")
			{
				export.GET("/shifts", executive, h.Export.CompanyShifts)
				export.GET("/calendar", h.Export.Calendar)
			}
		}
	}

	return r
}
