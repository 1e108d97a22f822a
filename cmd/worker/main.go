package main

import (
	"nova-hris/internal/app"
	"nova-hris/internal/config"
	"nova-hris/internal/i18n"
	"nova-hris/internal/logger"
	"nova-hris/internal/shared/apperror"

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

	infra, err := app.Connect(cfg, log, false)
	if err != nil {
		log.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	if err := app.RunWorker(infra); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
