package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/youruser/cardgen/internal/api"
	"github.com/youruser/cardgen/internal/app"
	"github.com/youruser/cardgen/internal/config"
)

func main() {
	cfgPath := flag.String("config", envOr("CARDGEN_CONFIG", "config.yaml"), "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	api.RegisterRoutes(r, api.NewHandlers(a.Cards))

	port := envOr("PORT", "8080")
	log.Println("starting server on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
