package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunt-api/internal/config"
	"github.com/yourusername/hunt-api/internal/handler"
	"github.com/yourusername/hunt-api/internal/middleware"
	pgRepo "github.com/yourusername/hunt-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/hunt-api/internal/repository/redis"
	"github.com/yourusername/hunt-api/internal/service"
	"github.com/yourusername/hunt-api/internal/service/progression"
	"github.com/yourusername/hunt-api/pkg/auth"
	"github.com/yourusername/hunt-api/pkg/database"
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
	huntRepo := pgRepo.NewHuntRepo(db)
	puzzleRepo := pgRepo.NewPuzzleRepo(db)
	teamRepo := pgRepo.NewTeamRepo(db)
	timeRepo := pgRepo.NewTimeMaintenanceRepo(db)
	announcementRepo := pgRepo.NewAnnouncementRepo(db)
	ruleRepo := pgRepo.NewRuleRepo(db)
	hintRepo := pgRepo.NewHintRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	huntService := service.NewHuntService(huntRepo, puzzleRepo, userRepo, announcementRepo, ruleRepo, hintRepo, teamRepo, cacheRepo)
	teamService := service.NewTeamService(huntRepo, teamRepo, userRepo)
	selector := progression.NewSelector(rand.New(rand.NewSource(time.Now().UnixNano())))
	progressService := service.NewProgressService(huntRepo, puzzleRepo, teamRepo, timeRepo, selector)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	huntHandler := handler.NewHuntHandler(huntService)
	teamHandler := handler.NewTeamHandler(teamService)
	progressHandler := handler.NewProgressHandler(progressService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := os.Getenv("GIN_MODE") == "release"
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
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
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()), authHandler.Register)
			authGroup.POST("/login", rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()), authHandler.Login)

			authedAuth := authGroup.Group("/", authMiddleware.RequireAuth())
			{
				authedAuth.GET("/me", authHandler.Me)
				authedAuth.POST("/change-password", authHandler.ChangePassword)
			}
		}

		// Охоты
		hunts := api.Group("/hunts")
		{
			hunts.GET("", huntHandler.ListHunts)
			hunts.POST("", authMiddleware.RequireAuth(), huntHandler.CreateHunt)
			hunts.GET("/by-slug/:slug", middleware.ExtractSlugParam("slug", "huntSlug"), huntHandler.GetHuntBySlug)
			hunts.GET("/exists/:slug", middleware.ExtractSlugParam("slug", "huntSlug"), huntHandler.HuntExists)

			huntWithID := hunts.Group("/:hunt_id", middleware.ExtractUintParam("hunt_id", "huntID"))
			{
				huntWithID.GET("", huntHandler.GetHunt)
				huntWithID.GET("/announcements", huntHandler.ListAnnouncements)
				huntWithID.GET("/rules", huntHandler.ListRules)
				huntWithID.GET("/leaderboard", progressHandler.GetLeaderboard)

				authedHunt := huntWithID.Group("", authMiddleware.RequireAuth())
				{
					// Управление охотой (организаторы; проверка прав в сервисе)
					authedHunt.PATCH("", huntHandler.UpdateHunt)
					authedHunt.DELETE("", huntHandler.DeleteHunt)
					authedHunt.POST("/organizers", huntHandler.AddOrganizer)
					authedHunt.POST("/register", huntHandler.RegisterParticipant)
					authedHunt.POST("/puzzles", huntHandler.CreatePuzzle)
					authedHunt.GET("/puzzles", huntHandler.ListPuzzles)
					authedHunt.POST("/announcements", huntHandler.CreateAnnouncement)
					authedHunt.POST("/rules", huntHandler.CreateRule)

					// Команды
					authedHunt.POST("/teams", teamHandler.CreateTeam)
					authedHunt.POST("/teams/join", teamHandler.JoinTeam)
					authedHunt.GET("/teams/my", teamHandler.GetMyTeam)

					// Прогрессия
					authedHunt.GET("/puzzle", progressHandler.GetCurrentPuzzle)
					authedHunt.POST("/advance", progressHandler.Advance)
				}
			}
		}

		// Загадки
		puzzles := api.Group("/puzzles/:puzzle_id",
			middleware.ExtractUintParam("puzzle_id", "puzzleID"),
			authMiddleware.RequireAuth())
		{
			puzzles.POST("/submit", rateLimiter.Limit(middleware.AnswerRateLimitConfig()), progressHandler.SubmitAnswer)
			puzzles.PATCH("", huntHandler.UpdatePuzzle)
			puzzles.DELETE("", huntHandler.DeletePuzzle)
			puzzles.POST("/hints", huntHandler.CreateHint)
		}

		// Команды
		teams := api.Group("/teams/:team_id",
			middleware.ExtractUintParam("team_id", "teamID"),
			authMiddleware.RequireAuth())
		{
			teams.GET("", teamHandler.GetTeam)
			teams.POST("/puzzle-order", teamHandler.SetPuzzleOrder)
			teams.GET("/hints", huntHandler.ListTeamHints)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждем сигнал остановки
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

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
