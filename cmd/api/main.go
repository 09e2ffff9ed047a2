package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flowhq/approval-backend/internal/config"
	"github.com/flowhq/approval-backend/internal/handler"
	"github.com/flowhq/approval-backend/internal/middleware"
	"github.com/flowhq/approval-backend/internal/migration"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/internal/routes"
	"github.com/flowhq/approval-backend/internal/service"
	pkgcache "github.com/flowhq/approval-backend/pkg/cache"
	"github.com/flowhq/approval-backend/pkg/jwt"
	pkglogger "github.com/flowhq/approval-backend/pkg/logger"
	"github.com/flowhq/approval-backend/pkg/mailer"
	pkgredis "github.com/flowhq/approval-backend/pkg/redis"
	pkgstorage "github.com/flowhq/approval-backend/pkg/storage"
)

// @title           Content Approval API
// @version         1.0
// @description     Content approval workflow backend: reviewer assignment, approval state machine, and reporting
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis (optional; caching degrades to no-op)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Redis connection failed: %v (continuing without cache)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	// S3-compatible storage (optional)
	var s3Client *pkgstorage.S3Client
	if cfg.Storage.Enabled && cfg.Storage.Bucket != "" {
		s3Client, err = pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			pkglogger.Warn("S3 storage init failed: %v (continuing without uploads)", err)
			s3Client = nil
		}
	}

	// Email delivery (optional)
	var mail mailer.Mailer
	if cfg.Mail.Enabled && cfg.Mail.APIKey != "" {
		mail = mailer.NewResendMailer(cfg.Mail.APIKey, cfg.Mail.From)
		pkglogger.Info("Email delivery enabled via Resend")
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)

	// Services
	notificationSvc := service.NewNotificationService(notificationRepo, mail)
	workflowSvc := service.NewWorkflowService(workflowRepo, cacheService)
	contentSvc := service.NewContentService(db, contentRepo, reviewRepo, versionRepo, userRepo, workflowSvc, notificationSvc, cacheService)
	reviewSvc := service.NewReviewService(db, reviewRepo, contentRepo, notificationSvc, cacheService)
	dashboardSvc := service.NewDashboardService(contentRepo, reviewRepo, userRepo, cacheService, cfg.Approval.SLADuration())
	authSvc := service.NewAuthService(userRepo, jwtManager)
	userSvc := service.NewUserService(userRepo)
	mediaSvc := service.NewMediaService(s3Client)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	contentHandler := handler.NewContentHandler(contentSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	adminHandler := handler.NewAdminHandler(workflowSvc, userSvc)
	mediaHandler := handler.NewMediaHandler(mediaSvc)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		cacheStatus := "disabled"
		if cacheService.IsAvailable() {
			cacheStatus = "ok"
			if err := cacheService.Ping(c.Request.Context()); err != nil {
				cacheStatus = "unreachable"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "approval-backend",
			"cache":   cacheStatus,
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(router,
		authHandler,
		contentHandler,
		reviewHandler,
		notificationHandler,
		dashboardHandler,
		adminHandler,
		mediaHandler,
		jwtManager,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

func splitAndTrim(s string, delimiter string) []string {
	parts := strings.Split(s, delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
