package main

import (
	"context"
	"time"

	"nova-hris/internal/app"
	"nova-hris/internal/bootstrap"
	"nova-hris/internal/config"
	"nova-hris/internal/i18n"
	"nova-hris/internal/logger"
	"nova-hris/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()
	if err := i18n.Init(cfg.Activity.Locale); err != nil {
		log.Fatal("load translations failed", zap.Error(err))
	}

	infra, err := app.Connect(cfg, log, true)
	if err != nil {
		log.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	if err := app.Migrate(infra); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	auditLogger := bootstrap.NewStdoutAuditLogger(log)
	if err := app.BuildApp(context.Background(), r, infra, auditLogger); err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.App.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	)
}
