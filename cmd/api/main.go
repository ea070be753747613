package main

import (
	"log"

	"barterhub/internal/config"
	"barterhub/internal/domain/chat"
	"barterhub/internal/domain/exchange"
	"barterhub/internal/domain/interest"
	"barterhub/internal/domain/offer"
	"barterhub/internal/domain/user"
	"barterhub/internal/handler"
	"barterhub/internal/redis"
	"barterhub/internal/repository"
	"barterhub/internal/server"
	"barterhub/internal/services"
	"barterhub/pkg/database"
	"barterhub/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.Server.Environment)
	defer l.Sync()
	logger.SetGlobalLogger(l)

	database.Connect(cfg)

	if err := database.ApplyRawMigrations("migrations"); err != nil {
		log.Fatalf("Failed to apply raw migrations: %v", err)
	}

	if err := database.DB.AutoMigrate(
		&user.User{},
		&offer.Offer{},
		&interest.Interest{},
		&chat.Chat{},
		&chat.Message{},
		&exchange.Record{},
	); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	var (
		limiter    *redis.RateLimiter
		countCache services.InterestCountCache
	)
	if cfg.Redis.Enabled {
		redis.Initialize(cfg.Redis)
		client := redis.GetClient()
		limiter = redis.NewRateLimiter(client, redis.DefaultRateLimitConfig())
		countCache = redis.NewCacheStore(client, redis.DefaultCacheConfig())
	} else {
		l.Infof("Redis disabled; rate limiting and count caching are off")
	}

	repos := repository.NewRepositories(database.DB)

	authService := services.NewAuthService(repos.Users, cfg)
	offerService := services.NewOfferService(database.DB, repos, l)
	interestService := services.NewInterestService(database.DB, repos, countCache, l)
	realizationService := services.NewRealizationService(database.DB, repos, interestService, l)
	chatService := services.NewChatService(database.DB, repos, l)
	exchangeService := services.NewExchangeService(database.DB, repos, l)

	handlers := &server.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Offers:    handler.NewOfferHandler(offerService, interestService),
		Interests: handler.NewInterestHandler(interestService, realizationService),
		Chats:     handler.NewChatHandler(chatService),
		Exchanges: handler.NewExchangeHandler(exchangeService),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
