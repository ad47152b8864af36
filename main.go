package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	// Environment variables are the only configuration surface. A .env file is
	// a convenience for local runs; deployments set real env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	container, err := BuildContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to build container: %v", err))
	}

	err = container.Invoke(func(app *Application) {
		if err := app.Initialize(); err != nil {
			panic(fmt.Sprintf("Failed to initialize application: %v", err))
		}

		defer app.Shutdown()

		if err := app.Run(); err != nil {
			panic(fmt.Sprintf("Failed to run application: %v", err))
		}
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to invoke application: %v", err))
	}
}
