package migration

import (
	entities2 "Foodgram-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities2.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Subscribe{}); err != nil {
		log.Fatalf("Error migrating subscribe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Tag{}); err != nil {
		log.Fatalf("Error migrating tag database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.MeasureUnit{}); err != nil {
		log.Fatalf("Error migrating measure unit database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.RecipeContent{}); err != nil {
		log.Fatalf("Error migrating recipe content database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Favorite{}); err != nil {
		log.Fatalf("Error migrating favorite database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.ShoppingCart{}); err != nil {
		log.Fatalf("Error migrating shopping cart database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
