package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"messenger/internal/adapters/ws"
	"messenger/internal/auth"
	"messenger/internal/config"
	"messenger/internal/store"
)

func SetupRouter(cfg *config.Config, authSvc *auth.Service, messages *store.Messages, wsCtl *ws.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	h := &Handlers{Auth: authSvc, Messages: messages}

	r.POST("/token", h.Login)
	r.GET("/validate-token", authRequired(authSvc), h.ValidateToken)
	r.GET("/messages/:chat_id", authRequired(authSvc), h.History)

	r.GET("/ws/:chat_id", wsCtl.Handle)

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
