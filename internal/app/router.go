// internal/app/router.go
package app

import (
	"net/http"

	"gracehub-service/internal/handlers"
	"gracehub-service/internal/middleware"
	"gracehub-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Logging(s.logger))
	r.Use(middleware.CORS())

	authHandler := handlers.NewAuthHandler(s.Auth, s.logger)
	memberHandler := handlers.NewMemberHandler(s.Members, s.logger)
	eventHandler := handlers.NewEventHandler(s.Events, s.logger)
	attendanceHandler := handlers.NewAttendanceHandler(s.Attendance, s.logger)
	celebrationHandler := handlers.NewCelebrationHandler(s.Celebrations, s.logger)
	wsHandler := handlers.NewWebSocketHandler(s.hub, s.logger)

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "OK", gin.H{
			"realtime_clients": s.hub.TotalClients(),
		})
	})

	r.GET("/ws", wsHandler.Handle)

	v1 := r.Group("/api/v1")
	{
		// Public surface
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/refresh", authHandler.Refresh)
		v1.POST("/auth/logout", authHandler.Logout)
		v1.POST("/celebrations", celebrationHandler.Submit)

		// Authenticated surface
		authed := v1.Group("", middleware.Auth(s.Auth))
		{
			authed.GET("/auth/me", authHandler.Me)
			authed.PUT("/auth/profile", authHandler.UpdateProfile)
			authed.POST("/auth/change-password", authHandler.ChangePassword)

			members := authed.Group("/members", middleware.RequirePermission("members"))
			{
				members.POST("", memberHandler.Create)
				members.GET("", memberHandler.List)
				members.GET("/:id", memberHandler.Get)
				members.PUT("/:id", memberHandler.Update)
				members.DELETE("/:id", memberHandler.Delete)
			}

			events := authed.Group("/events", middleware.RequirePermission("events"))
			{
				events.POST("", eventHandler.Create)
				events.GET("", eventHandler.List)
				events.GET("/:id", eventHandler.Get)
				events.PUT("/:id", eventHandler.Update)
				events.DELETE("/:id", eventHandler.Delete)
			}

			attendance := authed.Group("/attendance", middleware.RequirePermission("attendance"))
			{
				attendance.POST("", attendanceHandler.Record)
				attendance.GET("", attendanceHandler.List)
				attendance.DELETE("/:id", attendanceHandler.Delete)
			}

			celebrations := authed.Group("/celebrations", middleware.RequirePermission("celebrations"))
			{
				celebrations.GET("", celebrationHandler.List)
				celebrations.PATCH("/:id/review", celebrationHandler.Review)
				celebrations.DELETE("/:id", celebrationHandler.Delete)
			}
		}
	}

	return r
}
