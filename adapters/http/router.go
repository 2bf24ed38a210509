package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/skillmatch/pkg/auth"
	"github.com/khoahotran/skillmatch/pkg/errreport"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

func NewRouter(log logger.Logger, reporter *errreport.Reporter, sessions *auth.SessionService, authHandler *AuthHandler, profileHandler *ProfileHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), ErrorMiddleware(log, reporter))

	authMiddleware := AuthMiddleware(sessions, log)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authMiddleware, authHandler.Logout)

		private := api.Group("/profile")
		private.Use(authMiddleware)
		{
			private.GET("", profileHandler.GetProfile)
			private.PUT("/freelancer", profileHandler.UpdateFreelancer)
			private.PUT("/company", profileHandler.UpdateCompany)
			private.POST("/resume", profileHandler.ResumeProfile)
		}
	}
	return router
}
