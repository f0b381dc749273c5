package main

import (
	"log"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/service"
	"go-shop-pos/pkg/config"
	"go-shop-pos/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator escape hatch: resets the default administrator's password to a
// fresh random value and prints it once.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Setup Database
	db := database.Connect(cfg.DatabaseURL, cfg.SQLitePath)

	// 3. Find Admin
	var user model.User
	if err := db.Where("name = ?", service.BootstrapAdminName).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", service.BootstrapAdminName, err)
	}

	// 4. Generate and hash a new password
	newPassword, err := service.GeneratePassword()
	if err != nil {
		log.Fatalf("Failed to generate password: %v", err)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Success! Password for %s has been reset to: %s", user.Name, newPassword)
}
