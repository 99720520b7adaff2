// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio-go/internal/assistant"
	"folio-go/internal/config"
	"folio-go/internal/handler"
	"folio-go/internal/middleware"
	"folio-go/internal/model"
	"folio-go/internal/pipeline"
	"folio-go/internal/repository"
	"folio-go/internal/service"
	"folio-go/pkg/database"
	"folio-go/pkg/es"
	"folio-go/pkg/kafka"
	"folio-go/pkg/log"
	"folio-go/pkg/storage"
	"folio-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库与外部依赖
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 迁移数据表
	if err := database.DB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.WorkExperience{},
		&model.Project{},
		&model.BlogPost{},
		&model.Review{},
		&model.ContactMessage{},
	); err != nil {
		log.Fatalf("数据表迁移失败: %v", err)
	}

	// 5. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	profileRepo := repository.NewProfileRepository(database.DB)
	experienceRepo := repository.NewExperienceRepository(database.DB)
	projectRepo := repository.NewProjectRepository(database.DB)
	postRepo := repository.NewPostRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)
	captchaRepo := repository.NewCaptchaRepository(database.RDB)
	sessionRepo := repository.NewSessionRepository(database.RDB, time.Duration(cfg.Assistant.SessionTTLHours)*time.Hour)

	// 6. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	userService := service.NewUserService(userRepo, jwtManager)
	profileService := service.NewProfileService(profileRepo, experienceRepo)
	searchService := service.NewSearchService(cfg.Elasticsearch)
	projectService := service.NewProjectService(projectRepo, searchService)
	postService := service.NewPostService(postRepo, searchService)
	reviewService := service.NewReviewService(reviewRepo)
	captchaService := service.NewCaptchaService(captchaRepo, time.Duration(cfg.Captcha.TTLMinutes)*time.Minute)
	messageService := service.NewMessageService(messageRepo, captchaService, kafka.NewProducer())
	uploadService := service.NewUploadService(cfg.MinIO)

	// 首次启动写入配置的管理员账号
	if err := userService.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatalf("初始化管理员账号失败: %v", err)
	}

	// 7. 初始化聊天助手会话管理器
	scheduler := assistant.NewTimerScheduler(
		time.Duration(cfg.Assistant.PreTypingDelayMS)*time.Millisecond,
		time.Duration(cfg.Assistant.TypingDelayMS)*time.Millisecond,
	)
	sender := assistant.NewHTTPSender(cfg.Assistant.MessageEndpoint)
	assistantManager := assistant.NewManager(func(locale assistant.Locale) *assistant.Controller {
		return assistant.NewController(locale, scheduler, sender, cfg.Assistant.ResetOnClose)
	})

	// 8. 启动后台 Kafka 消费者（新留言通知管道）
	notifier := pipeline.NewNotifier(messageRepo)
	go kafka.StartConsumer(cfg.Kafka, notifier)

	// 9. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	authHandler := handler.NewAuthHandler(userService)
	profileHandler := handler.NewProfileHandler(profileService)
	projectHandler := handler.NewProjectHandler(projectService)
	postHandler := handler.NewPostHandler(postService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	messageHandler := handler.NewMessageHandler(messageService, captchaService)
	searchHandler := handler.NewSearchHandler(searchService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	assistantHandler := handler.NewAssistantHandler(assistantManager, sessionRepo, cfg.Assistant)

	authRequired := middleware.AuthMiddleware(jwtManager, userService)
	adminRequired := middleware.AdminAuthMiddleware()

	// 10. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refreshToken", authHandler.RefreshToken)

			authed := auth.Group("/")
			authed.Use(authRequired)
			{
				authed.GET("/me", authHandler.Me)
				authed.POST("/logout", authHandler.Logout)
			}
		}

		// 公开内容路由
		apiV1.GET("/profile", profileHandler.GetProfile)
		apiV1.GET("/experiences", profileHandler.ListExperiences)
		apiV1.GET("/projects", projectHandler.List)
		apiV1.GET("/projects/:slug", projectHandler.GetBySlug)
		apiV1.GET("/posts", postHandler.List)
		apiV1.GET("/posts/:slug", postHandler.GetBySlug)
		apiV1.GET("/reviews", reviewHandler.ListPublic)
		apiV1.POST("/reviews", reviewHandler.Submit)
		apiV1.GET("/search", searchHandler.Search)
		apiV1.GET("/assets/url", uploadHandler.GetAssetURL)

		// 留言与验证码（公开访问）
		apiV1.GET("/captcha", messageHandler.GetCaptcha)
		apiV1.POST("/messages", messageHandler.Submit)

		// 聊天助手挂件路由（公开访问）
		assistantGroup := apiV1.Group("/assistant/sessions")
		{
			assistantGroup.POST("", assistantHandler.CreateSession)
			assistantGroup.GET("/:id", assistantHandler.GetState)
			assistantGroup.DELETE("/:id", assistantHandler.DeleteSession)
			assistantGroup.POST("/:id/open", assistantHandler.Open)
			assistantGroup.POST("/:id/close", assistantHandler.Close)
			assistantGroup.POST("/:id/messages", assistantHandler.SendText)
			assistantGroup.POST("/:id/options", assistantHandler.SelectOption)
			assistantGroup.POST("/:id/schedule", assistantHandler.SubmitSchedule)
			assistantGroup.GET("/:id/transcript", assistantHandler.GetTranscript)
			assistantGroup.GET("/:id/ws", assistantHandler.HandleWS)
		}

		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin := apiV1.Group("/admin")
		admin.Use(authRequired, adminRequired)
		{
			admin.PUT("/profile", profileHandler.UpdateProfile)
			admin.POST("/experiences", profileHandler.CreateExperience)
			admin.PUT("/experiences/:id", profileHandler.UpdateExperience)
			admin.DELETE("/experiences/:id", profileHandler.DeleteExperience)

			admin.POST("/projects", projectHandler.Create)
			admin.PUT("/projects/:id", projectHandler.Update)
			admin.DELETE("/projects/:id", projectHandler.Delete)
			admin.PUT("/projects/:id/featured", projectHandler.SetFeatured)

			admin.POST("/posts", postHandler.Create)
			admin.PUT("/posts/:id", postHandler.Update)
			admin.DELETE("/posts/:id", postHandler.Delete)
			admin.PUT("/posts/:id/published", postHandler.SetPublished)

			admin.GET("/reviews", reviewHandler.ListAll)
			admin.PUT("/reviews/:id/approve", reviewHandler.Approve)
			admin.DELETE("/reviews/:id", reviewHandler.Delete)

			admin.GET("/messages", messageHandler.List)
			admin.PUT("/messages/:id/read", messageHandler.MarkRead)
			admin.DELETE("/messages/:id", messageHandler.Delete)

			admin.POST("/assets", uploadHandler.UploadAsset)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
