package migration

import (
	"fmt"
	"log"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Household{}); err != nil {
		log.Fatalf("Error migrating household database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.HouseholdMember{}); err != nil {
		log.Fatalf("Error migrating household member database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StorageLocation{}); err != nil {
		log.Fatalf("Error migrating storage location database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PantryItem{}); err != nil {
		log.Fatalf("Error migrating pantry item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserCredential{}); err != nil {
		log.Fatalf("Error migrating user credential database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
