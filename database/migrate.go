package database

import (
	"github.com/yeremiapane/palmpay-kiosk/models"
	"github.com/yeremiapane/palmpay-kiosk/utils"
	"gorm.io/gorm"
)

// Migrate runs AutoMigrate for every table the kiosk owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.PalmDevice{},
		&models.User{},
		&models.Card{},
		&models.PalmTemplate{},
		&models.AuthenticationLog{},
		&models.DeviceAuthenticationLog{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Older deployments stored empty image URLs as NULL
	if err := db.Exec("UPDATE products SET image_url = '' WHERE image_url IS NULL").Error; err != nil {
		utils.ErrorLogger.Printf("Error backfilling image_url: %v", err)
	}

	return nil
}
