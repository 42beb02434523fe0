package main

import (
	"log"
	"time"

	"storefront-api/internal/config"
	httpctrl "storefront-api/internal/controllers/http"
	mmysql "storefront-api/internal/infra/mysql"
	"storefront-api/internal/infra/rabbitmq"
	"storefront-api/internal/infra/stripe"
	mysqlrepo "storefront-api/internal/repository/mysql"
	"storefront-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg := config.Load()

	db, err := mmysql.NewMySQL(cfg.MySQL)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	userRepo := mysqlrepo.NewUserRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	reviewRepo := mysqlrepo.NewReviewRepository(db)

	gateway := stripe.NewClient(cfg.Stripe, 10*time.Second)

	var publisher rabbitmq.PublisherInterface
	if cfg.AMQPURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.AMQPURL, "order.exchange")
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	orderSvc := services.NewOrderService(orderRepo, gateway, publisher)
	statsSvc := services.NewStatsService(orderRepo, userRepo, productRepo, reviewRepo)
	productSvc := services.NewProductService(productRepo, reviewRepo)
	reviewSvc := services.NewReviewService(reviewRepo, productRepo)
	userSvc := services.NewUserService(userRepo)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	handler := httpctrl.NewHandler(orderSvc, statsSvc, productSvc, reviewSvc, userSvc, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	log.Printf("Starting storefront API on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
