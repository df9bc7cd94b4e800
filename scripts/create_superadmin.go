package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Mohit9674/Smart-Home-Management/models"
	"github.com/Mohit9674/Smart-Home-Management/storage"

	"golang.org/x/crypto/bcrypt"
)

// Creates the initial super admin if it does not exist yet. Reads
// SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD from the environment.
func main() {
	db := storage.InitializeDB()

	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD are required")
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("Super admin %s already exists.\n", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	user := models.User{
		FirstName: "Super",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hash),
		Role:      "super_admin",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error creating super admin: %v", err)
	}

	fmt.Printf("Super admin %s created!\n", email)
}
