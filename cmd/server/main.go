package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dailydiet/docs"
	"dailydiet/internal/cache"
	"dailydiet/internal/config"
	"dailydiet/internal/db"
	"dailydiet/internal/handler"
	"dailydiet/internal/repository"
	"dailydiet/internal/router"
	"dailydiet/internal/service"
)

// @title Daily Diet API
// @version 1.0
// @description Session-scoped meal diary with diet adherence metrics.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name sessionId
// @description Opaque session token set by /signup, /signin or the first anonymous /meal.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Printf("Warning: Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("%v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient == nil {
		log.Println("REDIS_ADDR is empty, metrics cache disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	mealRepo := repository.NewMealRepository(gormDB)

	// Initialize services
	userService := service.NewUserService(userRepo)
	mealService := service.NewMealService(mealRepo, cacheClient)
	metricsService := service.NewMetricsService(mealRepo, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService, cfg.CookieSecure)
	mealHandler := handler.NewMealHandler(mealService, cfg.CookieSecure)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	router.Register(e, userHandler, mealHandler, metricsHandler)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
		docs.SwaggerInfo.Host = host
		if strings.HasPrefix(cfg.SwaggerHost, "http") {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
