package main

import (
	"log"

	"github.com/toolhub/toolhub/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ toolhub failed to start: %v", err)
	}
}
