package main

import (
	"log"

	"backend/config"
	"backend/routes"
	"backend/services"
	"backend/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	if err := services.SeedDefaultLibrary(config.DB); err != nil {
		log.Printf("seeding default library: %v", err)
	}
	r := routes.SetupRouter()
	r.Run(":8080")
}
