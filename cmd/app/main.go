package main

import (
	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/internal/utils"
	"log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
