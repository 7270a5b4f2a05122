package main

import (
	"context"
	"log"
	"strings"
	"time"

	"botbase/bot"
	"botbase/config"
	"botbase/db"
	"botbase/handlers"
	"botbase/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	var logger *zap.Logger
	var err error
	if config.DEBUG_MODE {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := db.Init(); err != nil {
		sugar.Fatalf("database: %v", err)
	}
	models.Init()

	b := bot.New(sugar)
	go func() {
		if err := b.Run(context.Background()); err != nil {
			sugar.Fatalf("gateway stopped: %v", err)
		}
	}()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	handlers.Init(b)
	router.GET("/health", handlers.Health)
	router.GET("/invites/inviter", handlers.InviterGet)
	router.GET("/invites/list", handlers.InviteList)
	router.POST("/blacklist/add", handlers.BlacklistAdd)
	router.POST("/blacklist/remove", handlers.BlacklistRemove)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	sugar.Fatalf("server stopped: %v", err)
}
