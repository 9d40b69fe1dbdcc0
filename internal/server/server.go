package server

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/internal/conf"
	"github.com/iceymoss/echo-news/internal/engine"
	"github.com/iceymoss/echo-news/internal/handler"
	"github.com/iceymoss/echo-news/internal/repo"
	"github.com/iceymoss/echo-news/internal/service"
	"github.com/iceymoss/echo-news/pkg/db"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/logger"
	mailer "github.com/iceymoss/echo-news/pkg/message/email"
	"github.com/iceymoss/echo-news/pkg/sensitive"
	"github.com/iceymoss/echo-news/pkg/transaction"
)

type Server struct {
	engine    *gin.Engine
	scheduler *engine.Scheduler
}

func NewServer(cfg *conf.Config) (*Server, error) {
	// 数据源
	db.Init(db.Config{
		Dialect:  cfg.Database.Dialect,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		LogLevel: cfg.Database.LogLevel,
	})
	db.InitRedis(db.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := db.GetConn().AutoMigrate(
		&objects.User{},
		&objects.Category{},
		&objects.Article{},
		&objects.Profile{},
		&objects.InterestHistory{},
		&objects.Interaction{},
		&objects.Notification{},
	); err != nil {
		return nil, err
	}

	// 仓储
	users := repo.NewUserRepo()
	categories := repo.NewCategoryRepo()
	articles := repo.NewArticleRepo()
	profiles := repo.NewProfileRepo()
	history := repo.NewHistoryRepo()
	interactions := repo.NewInteractionRepo()
	notifications := repo.NewNotificationRepo()

	txManager := transaction.NewManager()

	// 内容审核词库，未配置则关闭
	var filter *sensitive.Word
	if cfg.Moderation.Lexicon != "" {
		var err error
		filter, err = sensitive.NewWord(cfg.Moderation.Lexicon)
		if err != nil {
			logger.Warn("⚠️ 敏感词词库加载失败，内容审核关闭", zap.Error(err))
			filter = nil
		}
	}

	smtp := mailer.NewMailer(cfg.Mailer.Host, cfg.Mailer.Port, cfg.Mailer.Username, cfg.Mailer.Password)
	codes := mailer.NewRedisCodeStore(db.GetRedis())

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	// 服务
	recommender := service.NewRecommender(articles, profiles, history, categories)
	articleSvc := service.NewArticleService(articles, categories, interactions, notifications, profiles, txManager, filter)
	articleSvc.RegisterHook(service.NewFanout(profiles, notifications))
	interactionSvc := service.NewInteractionService(interactions, articles, txManager)
	inboxSvc := service.NewInboxService(notifications, profiles, db.GetRedis(), cfg.Server.PageSize)
	accountSvc := service.NewAccountService(users, profiles, cfg.Auth.Secret, tokenTTL)
	resetSvc := service.NewResetService(users, codes, smtp)
	profileSvc := service.NewProfileService(profiles, categories)

	// 维护任务
	scheduler := engine.NewScheduler()
	for _, job := range cfg.Jobs {
		if !job.Enable {
			continue
		}
		if err := scheduler.AddJob(job.Cron, job.Name, job.Name, job.Params, engine.SourceYAML); err != nil {
			log.Printf("⚠️ Failed to schedule %s: %v", job.Name, err)
		} else {
			log.Printf("✅ Job scheduled: %s [%s]", job.Name, job.Cron)
		}
	}

	authH := handler.NewAuthHandler(accountSvc, resetSvc)
	articleH := handler.NewArticleHandler(articleSvc)
	interactionH := handler.NewInteractionHandler(interactionSvc)
	notificationH := handler.NewNotificationHandler(inboxSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	categoryH := handler.NewCategoryHandler(categories)
	feedH := handler.NewFeedHandler(recommender)

	secret := []byte(cfg.Auth.Secret)

	router := gin.Default()

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authH.Register)
			auth.POST("/login", authH.Login)
			auth.POST("/reset/request", authH.ResetRequest)
			auth.POST("/reset/verify", authH.ResetVerify)
			auth.POST("/reset/confirm", authH.ResetConfirm)
			auth.POST("/reset/resend", authH.ResetResend)
		}

		// 公开面，带令牌时个性化
		open := api.Group("", AuthOptional(secret))
		{
			open.GET("/feed", feedH.Feed)
			open.GET("/dashboard", feedH.Dashboard)
			open.GET("/articles/search", articleH.Search)
			open.GET("/articles/filter", articleH.Filter)
			open.GET("/categories", categoryH.List)
		}

		authed := api.Group("", AuthRequired(secret))
		{
			authed.POST("/articles", articleH.Publish)
			authed.PUT("/articles/:id", articleH.Update)
			authed.POST("/articles/:id/like", interactionH.Like)
			authed.POST("/articles/:id/save", interactionH.Save)
			authed.GET("/articles/liked", interactionH.Liked)
			authed.GET("/articles/saved", interactionH.Saved)

			authed.GET("/notifications", notificationH.List)
			authed.GET("/notifications/badge", notificationH.Badge)
			authed.POST("/notifications/:id/read", notificationH.MarkRead)
			authed.POST("/notifications/read-all", notificationH.MarkAllRead)

			authed.GET("/profile", profileH.Get)
			authed.PUT("/profile/interests", profileH.UpdateInterests)
			authed.PUT("/profile/bio", profileH.UpdateBio)

			authed.GET("/jobs", func(c *gin.Context) {
				handler.OK(c, scheduler.Stats.GetAll())
			})
			authed.POST("/jobs/:name/run", func(c *gin.Context) {
				if err := scheduler.ManualRun(c.Param("name")); err != nil {
					c.JSON(400, gin.H{"error": err.Error()})
					return
				}
				handler.OK(c, gin.H{"message": "Triggered"})
			})
		}

		// 详情放最后注册，动态段与 liked/saved 等固定段并存
		open.GET("/articles/:id", articleH.Detail)
	}

	return &Server{engine: router, scheduler: scheduler}, nil
}

func (s *Server) Run(addr string) error {
	// 启动任务调度器
	s.scheduler.Start()

	// 启动 web server
	return s.engine.Run(addr)
}
