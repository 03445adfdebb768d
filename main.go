package main

import (
	"log"

	"StockPilot/CronJobs"
	"StockPilot/FiberConfig"
	"StockPilot/Models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	db, err := Models.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := Models.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	go func() {
		lowStockChecker := CronJobs.NewLowStockChecker(db, false)
		if err := lowStockChecker.Start(); err != nil {
			log.Printf("Failed to start low-stock checker: %v", err)
		}
	}()

	FiberConfig.FiberConfig(db)
}
