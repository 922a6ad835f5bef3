package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/config"
	dbpkg "github.com/ClinicFlowBR/clinicflow/internal/db"
	infraRepo "github.com/ClinicFlowBR/clinicflow/internal/infra/repository"
	"github.com/ClinicFlowBR/clinicflow/internal/logging"
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
	"github.com/ClinicFlowBR/clinicflow/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logging.New()
	defer log.Sync() //nolint:errcheck

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	store := infraRepo.NewGormStore(db)

	// Espelho agregado: carrega tudo uma vez antes de aceitar tráfego.
	appCache := cache.New(store, log)
	appCache.LoadAll(context.Background())

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:    db,
		Redis: rdb,
		Cache: appCache,
		Store: store,
		Log:   log,
	})

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
