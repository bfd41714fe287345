package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yeremiapane/palmpay-kiosk/config"
	"github.com/yeremiapane/palmpay-kiosk/database"
	"github.com/yeremiapane/palmpay-kiosk/router"
	"github.com/yeremiapane/palmpay-kiosk/services"
	"github.com/yeremiapane/palmpay-kiosk/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	// Enrollment tokens live in-process; the sweeper reclaims expired ones
	cache := services.NewEnrollmentCache()
	cache.Start()
	defer cache.Stop()

	r := router.SetupRouter(db, cache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
