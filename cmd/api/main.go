package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/fitpulse/gym-api/internal/config"
	dbpkg "github.com/fitpulse/gym-api/internal/db"
	"github.com/fitpulse/gym-api/internal/middleware"
	"github.com/fitpulse/gym-api/internal/routes"
	"github.com/fitpulse/gym-api/internal/session"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	sessions := session.NewRedisStore(rdb)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, sessions)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
