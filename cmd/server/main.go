package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory_api/internal/config"
	"inventory_api/internal/handler"
	"inventory_api/internal/middleware"
	"inventory_api/internal/model"
	"inventory_api/internal/repository"
	"inventory_api/internal/service"
	"inventory_api/internal/store"
	"inventory_api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Collections ---
	users, err := store.NewCollection[model.User](cfg.DataDir, "users")
	if err != nil {
		log.Fatalf("Failed to open users collection: %v", err)
	}
	products, err := store.NewCollection[model.Product](cfg.DataDir, "products")
	if err != nil {
		log.Fatalf("Failed to open products collection: %v", err)
	}
	log.Printf("Collections stored in: %s", cfg.DataDir)

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.TokenTTL)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(users)
	productRepo := repository.NewProductRepository(products)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil, cfg.RegisterRole)
	productService := service.NewProductService(productRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	// --- Setup Gin Router ---
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminRoleMW := middleware.AdminMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	productHandler.RegisterProductRoutes(apiGroup, jwtAuthMW, adminRoleMW)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": "inventory-api"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
