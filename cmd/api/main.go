package main

import (
	"context"
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

	"github.com/localscoop/escoop-backend/internal/campaign"
	"github.com/localscoop/escoop-backend/internal/composer"
	"github.com/localscoop/escoop-backend/internal/config"
	"github.com/localscoop/escoop-backend/internal/directory"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/handler"
	"github.com/localscoop/escoop-backend/internal/middleware"
	"github.com/localscoop/escoop-backend/internal/repository"
	"github.com/localscoop/escoop-backend/internal/routes"
	"github.com/localscoop/escoop-backend/internal/service"
	pkgcache "github.com/localscoop/escoop-backend/pkg/cache"
	"github.com/localscoop/escoop-backend/pkg/jwt"
	pkglogger "github.com/localscoop/escoop-backend/pkg/logger"
	pkgredis "github.com/localscoop/escoop-backend/pkg/redis"
	pkgstorage "github.com/localscoop/escoop-backend/pkg/storage"
)

// @title           eScoop Backend API
// @version         1.0
// @description     Local Scoop CMS, public directory, and eScoop newsletter builder
//
// @host            localhost:8082
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

	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")

	// Redis
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	// Cache service degrades to a pass-through when Redis is down
	cacheService := pkgcache.NewService(redisClient)

	// S3-compatible storage
	var s3Client *pkgstorage.S3Client
	if cfg.Storage.Enabled && cfg.Storage.Bucket != "" {
		var s3Err error
		s3Client, s3Err = pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if s3Err != nil {
			pkglogger.Info("Warning: S3 storage init failed: %v (continuing without S3)", s3Err)
			s3Client = nil
		} else {
			pkglogger.Info("Connected to S3 storage")
		}
	}

	// JWT Manager
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiresIn,
		cfg.JWT.RefreshIn,
	)

	// Campaign provider
	provider := campaign.NewClient(cfg.Campaign.BaseURL, cfg.Campaign.APIKey)

	// Newsletter renderer and builder sessions
	renderer, err := composer.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse issue template: %v", err)
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	artsGroupRepo := repository.NewArtsGroupRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	userRepo := repository.NewUserRepository(db)

	sessions := composer.NewSessions(newsletterRepo)

	// Services
	eventSvc := service.NewEventService(eventRepo, cacheService)
	restaurantSvc := service.NewRestaurantService(restaurantRepo, cacheService)
	artsGroupSvc := service.NewArtsGroupService(artsGroupRepo)
	bannerSvc := service.NewBannerService(bannerRepo, cacheService)
	authSvc := service.NewAuthService(userRepo, jwtManager)
	mediaSvc := service.NewMediaService(s3Client)
	newsletterSvc := service.NewNewsletterService(sessions, renderer, newsletterRepo, restaurantRepo, eventRepo, bannerSvc)
	campaignSvc := service.NewCampaignService(newsletterSvc, provider, newsletterRepo, cfg.Campaign.SenderName, cfg.Campaign.SenderEmail)

	// Browse sessions hold per-visitor directory filter and pagination
	// state on top of the directory services
	browseSessions := directory.NewSessions(
		marketState(cfg.App.Market),
		directory.DefaultPageSize,
		func(ctx context.Context, criteria domain.Criteria, limit int, cursor string) ([]domain.EventResponse, domain.PageInfo, error) {
			result, err := eventSvc.List(ctx, criteria, limit, cursor)
			if err != nil {
				return nil, domain.PageInfo{}, err
			}
			return result.Events, result.Page, nil
		},
		func(ctx context.Context, criteria domain.Criteria, limit int, cursor string) ([]domain.RestaurantResponse, domain.PageInfo, error) {
			result, err := restaurantSvc.List(ctx, criteria, limit, cursor)
			if err != nil {
				return nil, domain.PageInfo{}, err
			}
			return result.Restaurants, result.Page, nil
		},
	)

	// Handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Event:      handler.NewEventHandler(eventSvc),
		Restaurant: handler.NewRestaurantHandler(restaurantSvc),
		ArtsGroup:  handler.NewArtsGroupHandler(artsGroupSvc),
		Banner:     handler.NewBannerHandler(bannerSvc),
		Newsletter: handler.NewNewsletterHandler(newsletterSvc, campaignSvc),
		Media:      handler.NewMediaHandler(mediaSvc),
		Browse:     handler.NewBrowseHandler(browseSessions),
	}

	router := gin.Default()

	// CORS
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "X-Cache"},
		MaxAge:           86400,
	}))

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "escoop-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(router, handlers)
	routes.SetupAdmin(router, handlers, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// marketState extracts the state code from a "City, ST" market string
func marketState(market string) string {
	if i := strings.LastIndex(market, ","); i >= 0 {
		return strings.TrimSpace(market[i+1:])
	}
	return strings.TrimSpace(market)
}

func splitAndTrim(s string, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
