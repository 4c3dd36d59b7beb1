package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lightfieldlegal/lightfield-api/internal/ai"
	"github.com/lightfieldlegal/lightfield-api/internal/cache"
	"github.com/lightfieldlegal/lightfield-api/internal/config"
	dbpkg "github.com/lightfieldlegal/lightfield-api/internal/db"
	"github.com/lightfieldlegal/lightfield-api/internal/logger"
	"github.com/lightfieldlegal/lightfield-api/internal/notify"
	"github.com/lightfieldlegal/lightfield-api/internal/paystack"
	"github.com/lightfieldlegal/lightfield-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	// Redis is optional: without it view counting degrades to direct
	// database increments.
	rdb, err := cache.New(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Warn("redis unavailable, view counting degrades to direct writes", zap.Error(err))
		rdb = nil
	}

	gateway := paystack.NewClient(cfg.PaystackSecretKey, cfg.PaystackCallbackURL)
	mailer := notify.NewSMTPMailer(cfg)

	gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("gemini client init failed", zap.Error(err))
	}
	defer gemini.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	viewCounter := routes.Register(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Logger:    log,
		Gateway:   gateway,
		Mailer:    mailer,
		Generator: gemini,
		Redis:     rdb,
	})
	defer viewCounter.Stop()

	log.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
