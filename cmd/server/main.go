package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Maitreya04/greendotv3/internal/catalog"
	"github.com/Maitreya04/greendotv3/internal/diet"
	"github.com/Maitreya04/greendotv3/internal/handlers"
	"github.com/Maitreya04/greendotv3/internal/services"
	"github.com/Maitreya04/greendotv3/internal/storage"
	"github.com/Maitreya04/greendotv3/pkg/helper"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	config := helper.LoadConfigFromEnv()

	// Load diet rule tables once; they stay read-only for the process
	// lifetime. A broken override file falls back to the built-ins.
	tables := diet.DefaultTables()
	if config.RulesPath != "" {
		loaded, err := diet.LoadTables(config.RulesPath)
		if err != nil {
			log.Printf("Warning: Could not load rules from %s (%v). Using built-in tables.", config.RulesPath, err)
		} else {
			tables = loaded
			log.Printf("Loaded diet rules from %s", config.RulesPath)
		}
	}
	classifier := diet.NewEngine(tables)

	// Initialize scan history store
	history, err := storage.NewHistoryStore(config.DBPath)
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer func() {
		if err := history.Close(); err != nil {
			log.Printf("Error closing history database: %v", err)
		}
	}()

	// Initialize catalog client and services
	catalogClient := catalog.NewClient(config.OFFBaseURL)
	suggestionService := services.NewSuggestionService(catalogClient, classifier)

	// Initialize API handlers
	apiHandler := handlers.NewAPIHandler(classifier, suggestionService, catalogClient, history)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Setup API routes
	apiHandler.SetupRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Gracefully shutdown with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
