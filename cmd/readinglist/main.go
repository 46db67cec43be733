package main

import (
	stdLog "log"
	"time"

	"github.com/Astemirdum/readinglist-service/app"
	"github.com/Astemirdum/readinglist-service/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
