package main

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/cache"
	"github.com/preetinest/cms-backend/internal/config"
	"github.com/preetinest/cms-backend/internal/database"
	"github.com/preetinest/cms-backend/internal/handler"
	"github.com/preetinest/cms-backend/internal/media"
	"github.com/preetinest/cms-backend/internal/middleware"
	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/redis"
	"github.com/preetinest/cms-backend/internal/repository"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/internal/storage"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		middleware.GetLogger().Fatal("加载配置失败", zap.Error(err))
	}
	if err := middleware.InitLogger(cfg.Log); err != nil {
		middleware.GetLogger().Fatal("初始化日志失败", zap.Error(err))
	}
	logger := middleware.GetLogger()
	defer logger.Sync()

	// 初始化数据库连接
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer database.Close()
	logger.Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 初始化 Redis 连接
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(err))
	}
	defer redis.Close()
	logger.Info("Redis 连接成功")

	// 自动迁移数据库表
	if err := database.Migrate(cfg.Database.Driver); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}
	logger.Info("数据库迁移完成")

	store, err := storage.New(&cfg.Storage)
	if err != nil {
		logger.Fatal("初始化对象存储失败", zap.Error(err))
	}
	resolver := media.NewResolver(store, cfg.Storage.BaseURL)

	privateKey, generated, err := service.LoadSigningKey(cfg.JWT.PrivateKeyPath)
	if err != nil {
		logger.Fatal("加载签名密钥失败", zap.Error(err))
	}
	if generated {
		logger.Warn("未配置 jwt.private_key_path，使用临时密钥")
	}

	svc := buildServices(cfg, resolver, privateKey, logger)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(svc, handler.RouterOptions{
		Media:       resolver,
		Redis:       redis.GetClient(),
		RateLimit:   cfg.RateLimit,
		MaxUploadMB: cfg.Server.MaxUploadMB,
		Health: map[string]handler.Checker{
			"database": func(context.Context) error { return database.Ping() },
			"redis":    redis.Ping,
		},
	})

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("服务启动", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务...")

	// 优雅关闭，等待 5 秒
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务关闭失败", zap.Error(err))
	}
	logger.Info("服务已关闭")
}

// buildServices 组装数据访问层与服务层
func buildServices(cfg *config.Config, resolver *media.Resolver, key *rsa.PrivateKey, logger *zap.Logger) *handler.Services {
	db := database.GetDB()

	users := repository.NewUserRepository(db)
	roles := repository.NewRoleRepository(db)
	categories := repository.NewRepository[model.Category](db)
	subCategories := repository.NewRepository[model.SubCategory](db)
	services := repository.NewRepository[model.Service](db)
	blogs := repository.NewRepository[model.Blog](db)

	menuCache := cache.NewJSONCache(redis.GetClient(), service.MenuCacheKey, cfg.Cache.MenuTTL)
	guard := service.NewAdminGuard(users, roles)
	deps := service.Deps{
		Guard:        guard,
		Media:        resolver,
		Logger:       logger,
		OnMenuChange: service.MenuInvalidator(menuCache, logger),
	}

	svc := &handler.Services{
		Category:      service.NewCategoryService(categories, deps),
		SubCategory:   service.NewSubCategoryService(subCategories, categories, deps),
		Service:       service.NewServiceService(services, subCategories, deps),
		ServiceDetail: service.NewServiceDetailService(repository.NewRepository[model.ServiceDetail](db), services, deps),
		ServiceFAQ:    service.NewServiceFAQService(repository.NewRepository[model.ServiceFAQ](db), services, deps),
		Blog: service.NewBlogService(blogs, service.BlogRefs{
			Categories:    categories,
			SubCategories: subCategories,
			Services:      services,
		}, deps),
		BlogDetail: service.NewBlogDetailService(repository.NewRepository[model.BlogDetail](db), blogs, deps),
		BlogFAQ:    service.NewBlogFAQService(repository.NewRepository[model.BlogFAQ](db), blogs, deps),
		Client:     service.NewClientService(repository.NewRepository[model.Client](db), deps),
		User:       service.NewUserService(users, roles, deps),
		Role:       service.NewRoleService(roles, deps),
		Auth:       service.NewAuthService(users, roles, logger),
		Token: service.NewTokenService(&service.TokenServiceConfig{
			PrivateKey:   key,
			KeyID:        cfg.JWT.KeyID,
			Issuer:       cfg.JWT.Issuer,
			AccessExpiry: cfg.JWT.AccessExpiry,
		}),
		Guard: guard,
	}
	svc.Inquiry = service.NewInquiryService(
		repository.NewRepository[model.Inquiry](db),
		service.NewSlugResolver(svc.Service, svc.Blog, svc.Client),
		deps,
	)
	svc.Page = service.NewPageService(service.PageServices{
		Services:       svc.Service,
		ServiceDetails: svc.ServiceDetail,
		ServiceFAQs:    svc.ServiceFAQ,
		Blogs:          svc.Blog,
		BlogDetails:    svc.BlogDetail,
		BlogFAQs:       svc.BlogFAQ,
		Clients:        svc.Client,
	}, menuCache, logger)
	return svc
}
