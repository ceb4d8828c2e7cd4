package main

import (
	"log"

	"lootbox_backend/internal/app"
)

func main() {
	a := app.NewApp()
	err := a.Run()
	if err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
