package main

import (
	stdLog "log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Astemirdum/rental-service/rental/app"
	"github.com/Astemirdum/rental-service/rental/config"
)

//	@title			Rental service
//	@version		1.0
//	@description	Vehicle check-out, check-in, inspections and additional charges.
//	@BasePath		/api/v1

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file, using environment only: ", err)
	}
	cfg := config.NewConfig(
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("app.Run ", err)
	}
}
