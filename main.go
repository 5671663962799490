package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/certportal/verification/client"
	"github.com/certportal/verification/config"
	"github.com/certportal/verification/handler"
	"github.com/certportal/verification/service"
	"github.com/certportal/verification/store"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()
	sugar := logger.Sugar()

	// gosseract reads tessdata location from the environment as well
	os.Setenv("TESSDATA_PREFIX", cfg.TessdataPrefix)

	ctx := context.Background()

	mongoClient, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDatabase)

	appStore := store.NewMongoApplicationStore(db)
	citizenStore := store.NewMongoCitizenStore(db)
	ruleStore := store.NewMongoRuleStore(db)
	if err := ruleStore.EnsureSeed(ctx); err != nil {
		log.Fatalf("Failed to seed document rules: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	ocrCache := store.NewRedisOCRCache(rdb, cfg.CacheTTL, sugar)

	// OCR chain: subprocess primary, Tesseract fallback, QR fast path
	ocrClient := client.NewPythonOCRClient(cfg.PythonBin, cfg.OCRScriptPath, cfg.OCRTimeout, sugar)
	tesseractClient := client.NewTesseractClient(cfg.TessdataPrefix)
	qrClient := client.NewQRClient()
	pdfProcessor := service.NewPDFProcessor()
	gateway := service.NewOCRGateway(ocrClient, tesseractClient, qrClient, pdfProcessor, ocrCache, sugar)

	resolver := service.NewCitizenResolver(citizenStore, gateway, sugar)

	groqClient := client.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL, cfg.GroqTimeout)
	crossCheck := service.NewCrossCheckService(groqClient, sugar)

	verifyService := service.NewVerifyService(
		appStore,
		ruleStore,
		resolver,
		gateway,
		service.NewCheckRegistry(),
		crossCheck,
		sugar,
	)

	verifyHandler := handler.NewVerifyHandler(verifyService, sugar)
	appHandler := handler.NewApplicationHandler(appStore, sugar)

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Certificate Verification",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		applications := api.Group("/applications")
		{
			applications.POST("", appHandler.Submit)
			applications.GET("/:id", appHandler.Get)
			applications.PATCH("/:id/status", appHandler.UpdateStatus)
			applications.POST("/:id/verify", verifyHandler.Verify)
		}
	}

	sugar.Infow("starting certificate verification service", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newLogger(levelStr string) *zap.Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, _ := cfg.Build()
	return logger
}
