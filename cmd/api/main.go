package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quorum-api/internal/config"
	"github.com/yourusername/quorum-api/internal/handler"
	"github.com/yourusername/quorum-api/internal/middleware"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
	pgRepo "github.com/yourusername/quorum-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quorum-api/internal/repository/redis"
	"github.com/yourusername/quorum-api/internal/service"
	ws "github.com/yourusername/quorum-api/internal/websocket"
	"github.com/yourusername/quorum-api/pkg/auth"
	"github.com/yourusername/quorum-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	partyRepo := pgRepo.NewPartyRepo(db)
	teamRepo := pgRepo.NewTeamRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	answerRepo := pgRepo.NewUserAnswerRepo(db)
	commentRepo := pgRepo.NewCommentRepo(db)
	roleRepo := pgRepo.NewRoleRepo(db)
	statsRepo := pgRepo.NewStatsRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Внешние провайдеры. Отсутствие учетных данных отключает фичу,
	// но не мешает запуску приложения.
	var verifier service.PhoneVerifier
	if twilioVerifier, err := service.NewTwilioPhoneVerifier(cfg.SMS); err == nil {
		verifier = twilioVerifier
		log.Println("Верификация телефона включена (Twilio Verify)")
	} else if errors.Is(err, apperrors.ErrConfig) {
		verifier = &service.NoopPhoneVerifier{}
		log.Println("SMS-провайдер не настроен, верификация телефона отключена")
	} else {
		log.Printf("Failed to initialize phone verifier: %v", err)
		os.Exit(1)
	}

	var aiGenerator service.AIQuestionGenerator
	if httpGenerator, err := service.NewHTTPAIGenerator(cfg.AI); err == nil {
		aiGenerator = httpGenerator
		log.Println("AI-генерация вопросов включена")
	} else if errors.Is(err, apperrors.ErrConfig) {
		aiGenerator = &service.NoopAIGenerator{}
		log.Println("AI-эндпоинт не настроен, генерация вопросов отключена")
	} else {
		log.Printf("Failed to initialize AI generator: %v", err)
		os.Exit(1)
	}

	var notifier service.ModerationNotifier
	if resendNotifier, err := service.NewResendNotifier(
		cfg.Notifications.ResendAPIKey, cfg.Notifications.EmailFrom, cfg.Notifications.AdminEmail,
	); err == nil {
		notifier = resendNotifier
		log.Println("Email-уведомления модерации включены (Resend)")
	} else {
		notifier = &service.NoopNotifier{}
		log.Println("Email-уведомления не настроены, используются noop-уведомления")
	}

	// WebSocket hub для live-статистики
	hub := ws.NewHub()
	go hub.Run()

	// Инициализируем сервисы
	catalogService := service.NewCatalogService(partyRepo, teamRepo)
	questionService := service.NewQuestionService(questionRepo, partyRepo, teamRepo)
	statsService := service.NewStatsService(questionRepo, statsRepo, cacheRepo)
	surveyService := service.NewSurveyService(questionRepo, answerRepo, userRepo, catalogService, statsService, hub)
	authService := service.NewAuthService(userRepo, catalogService, jwtService)
	roleService := service.NewRoleService(roleRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, questionRepo, roleRepo, notifier)

	// Назначаем первого администратора, если настроен bootstrap-телефон
	if err := roleService.BootstrapAdmin(cfg.Auth.BootstrapAdminPhone); err != nil {
		log.Printf("Bootstrap администратора не удался: %v", err)
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, verifier)
	userHandler := handler.NewUserHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	surveyHandler := handler.NewSurveyHandler(surveyService, statsService)
	commentHandler := handler.NewCommentHandler(commentService)
	adminHandler := handler.NewAdminHandler(questionService, catalogService, statsService, roleService, aiGenerator)
	wsHandler := handler.NewWSHandler(hub)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, roleRepo)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/verification/send", authHandler.StartPhoneVerification)
			authGroup.POST("/verification/check", authHandler.CheckPhoneVerification)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.POST("/logout", authHandler.Logout)
			}
		}

		// Профиль пользователя
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateProfile)
			users.DELETE("/me", userHandler.DeleteAccount)
		}

		// Каталог (публичный: нужен на форме регистрации)
		catalog := api.Group("/catalog")
		{
			catalog.GET("/parties", catalogHandler.ListParties)
			catalog.GET("/teams", catalogHandler.ListTeams)
		}

		// Ленты вопросов по модулям
		modules := api.Group("/modules/:module")
		modules.Use(authMiddleware.RequireAuth(), middleware.ExtractModuleParam("module"))
		{
			modules.GET("/questions", surveyHandler.GetWeekFeed)
			modules.GET("/questions/timeless", surveyHandler.GetTimelessFeed)
		}

		// Операции над конкретным вопросом
		questions := api.Group("/questions/:id")
		questions.Use(authMiddleware.RequireAuth(), middleware.ExtractUintParam("id", "question_id"))
		{
			questions.GET("", surveyHandler.GetQuestion)
			questions.POST("/answers", surveyHandler.SubmitAnswer)
			questions.GET("/stats", surveyHandler.GetQuestionStats)
			questions.GET("/comments", commentHandler.ListComments)
			questions.POST("/comments", commentHandler.AddComment)
		}

		// Комментарии
		comments := api.Group("/comments/:id")
		comments.Use(authMiddleware.RequireAuth(), middleware.ExtractUintParam("id", "comment_id"))
		{
			comments.DELETE("", commentHandler.DeleteComment)
			comments.POST("/report", commentHandler.ReportComment)
		}

		// Админ-панель
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.GET("/questions", adminHandler.ListQuestions)
			admin.POST("/questions", adminHandler.CreateQuestion)

			adminQuestion := admin.Group("/questions/:id")
			adminQuestion.Use(middleware.ExtractUintParam("id", "question_id"))
			{
				adminQuestion.DELETE("", adminHandler.DeleteQuestion)
				adminQuestion.GET("/stats/export", adminHandler.ExportQuestionStats)
			}

			admin.POST("/parties", adminHandler.CreateParty)
			admin.DELETE("/parties/:id", middleware.ExtractUintParam("id", "entity_id"), adminHandler.DeleteParty)
			admin.POST("/teams", adminHandler.CreateTeam)
			admin.DELETE("/teams/:id", middleware.ExtractUintParam("id", "entity_id"), adminHandler.DeleteTeam)

			admin.POST("/roles/admin", adminHandler.PromoteAdmin)
			admin.POST("/ai/questions", adminHandler.GenerateQuestion)
		}
	}

	// WebSocket маршрут live-статистики
	router.GET("/ws", authMiddleware.RequireAuth(), wsHandler.Subscribe)

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
