package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"julex/internal/cache"
	"julex/internal/config"
	applog "julex/internal/log"
	"julex/internal/repos"
	"julex/internal/serverless"
	"julex/internal/services"
)

func main() {
	cfg := config.Load()
	logger, err := applog.Init(cfg.LogLevel, "")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := repos.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("lambda.db.open", zap.Error(err))
	}
	defer db.Close()

	var pc cache.ProductCache = cache.NewMemory(cfg.CacheTTL)
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(context.Background(), cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			logger.Warn("cache.redis.unavailable", zap.Error(err))
		} else {
			defer rc.Close()
			pc = rc
		}
	}

	svc := services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db), pc)
	h := &serverless.CatalogHandler{Catalog: svc, MaxAge: int(cfg.CacheTTL.Seconds())}
	logger.Info("lambda.start", zap.String("function", os.Getenv("AWS_LAMBDA_FUNCTION_NAME")))
	lambda.Start(h.Handle)
}
