package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/cristianlarad/ARCADE-MAX/internal/api"
	"github.com/cristianlarad/ARCADE-MAX/internal/client"
	"github.com/cristianlarad/ARCADE-MAX/internal/config"
	"github.com/cristianlarad/ARCADE-MAX/internal/consumer"
	"github.com/cristianlarad/ARCADE-MAX/internal/notify"
	"github.com/cristianlarad/ARCADE-MAX/internal/repository"
	"github.com/cristianlarad/ARCADE-MAX/internal/service"
	"github.com/cristianlarad/ARCADE-MAX/internal/sharding"
	"github.com/cristianlarad/ARCADE-MAX/migrations"
)

func connectDBEnv(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func main() {
	db1, err := connectDBEnv(os.Getenv("DB1_HOST"), os.Getenv("DB1_PORT"), os.Getenv("DB1_USER"), os.Getenv("DB1_PASS"), os.Getenv("DB1_NAME"))
	if err != nil {
		panic(err)
	}
	db2, err := connectDBEnv(os.Getenv("DB2_HOST"), os.Getenv("DB2_PORT"), os.Getenv("DB2_USER"), os.Getenv("DB2_PASS"), os.Getenv("DB2_NAME"))
	if err != nil {
		panic(err)
	}
	db3, err := connectDBEnv(os.Getenv("DB3_HOST"), os.Getenv("DB3_PORT"), os.Getenv("DB3_USER"), os.Getenv("DB3_PASS"), os.Getenv("DB3_NAME"))
	if err != nil {
		panic(err)
	}

	err = migrations.AutoMigrateOrders(3, db1, db2, db3)
	if err != nil {
		log.Fatalf("Failed to migrate orders table: %v", err)
	}

	err = migrations.AutoMigrateOrderLines(3, db1, db2, db3)
	if err != nil {
		log.Fatalf("Failed to migrate order_lines table: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: getenv("REDIS_ADDR", "localhost:6379"),
	})

	orderWriter := config.NewKafkaWriter(getenv("ORDER_TOPIC", "order-topic"))
	notificationWriter := config.NewKafkaWriter(getenv("NOTIFICATION_TOPIC", "notification-topic"))
	taskReader := config.NewKafkaReader(getenv("TASK_TOPIC", "task-topic"), "storefront-session-group")
	orderReader := config.NewKafkaReader(getenv("ORDER_TOPIC", "order-topic"), "storefront-order-status-group")

	taskBackend := client.NewTaskBackendClient(getenv("TASK_BACKEND_URL", "http://localhost:8081/api"), rdb)
	catalog := client.NewCatalogClient(getenv("CATALOG_URL", "http://localhost:8083"))
	notifier := notify.NewKafkaNotifier(notificationWriter)

	router := sharding.NewShardRouter(3)
	orderRepo := repository.NewOrderRepository([]*sql.DB{db1, db2, db3}, router)
	idempotency := repository.NewIdempotencyStore(rdb)
	carts := repository.NewCartStore()
	boards := repository.NewBoardStore()

	cartService := service.NewCartService(carts)
	checkoutService := service.NewCheckoutService(carts, orderRepo, idempotency, catalog, orderWriter, notifier)
	boardService := service.NewBoardService(boards, taskBackend, notifier)

	cartHandler := api.NewCartHandler(cartService, checkoutService)
	boardHandler := api.NewBoardHandler(boardService)
	orderHandler := api.NewOrderHandler(orderRepo)

	// consumers
	taskConsumer := consumer.NewConsumer(taskReader, boards, taskBackend)
	go taskConsumer.Start(context.Background())

	orderConsumer := consumer.NewOrderConsumer(orderReader, orderRepo)
	go orderConsumer.Start(context.Background())

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))
	e.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(getenv("JWT_SECRET", "secret")),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(api.JwtCustomClaims)
		},
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/session/health"
		},
	}))

	e.GET("/cart", cartHandler.GetCart)
	e.POST("/cart/items", cartHandler.AddItem)
	e.PUT("/cart/items/:id", cartHandler.UpdateQuantity)
	e.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	e.DELETE("/cart", cartHandler.ClearCart)
	e.POST("/checkout", cartHandler.Checkout)

	e.GET("/orders", orderHandler.ListOrders)
	e.GET("/orders/:id", orderHandler.GetOrder)

	e.GET("/board/tasks", boardHandler.GetTasks)
	e.PUT("/board/tasks/order", boardHandler.ReorderTasks)
	e.DELETE("/board/tasks/:id", boardHandler.DeleteTask)
	e.POST("/board/tasks/:id/complete", boardHandler.CompleteTask)
	e.POST("/board/tasks/bin/clear", boardHandler.ClearRecycleBin)
	e.GET("/board/projects", boardHandler.GetProjects)
	e.PUT("/board/projects/order", boardHandler.ReorderProjects)
	e.DELETE("/board/projects/:id", boardHandler.DeleteProject)
	e.GET("/status/styles", boardHandler.GetStatusStyles)

	e.GET("/session/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "storefront-session-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + getenv("PORT", "8084")))
}
