package main

import (
	"context"
	"go-gin-seat-reservation/config"
	"go-gin-seat-reservation/internal/cache"
	"go-gin-seat-reservation/internal/database"
	"go-gin-seat-reservation/internal/handler"
	"go-gin-seat-reservation/internal/queue"
	"go-gin-seat-reservation/internal/repository"
	"go-gin-seat-reservation/internal/service"
	"go-gin-seat-reservation/internal/session"
	"go-gin-seat-reservation/internal/worker"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	eventRepo := repository.NewEventRepository(pool)
	organizerRepo := repository.NewOrganizerRepository(pool)
	zoneConfigRepo := repository.NewZoneConfigRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)

	occupancyManager := cache.NewRedisSeatOccupancyManager(rdb)
	sessions := session.NewRedisStore(rdb, time.Duration(cfg.Session.TTLSeconds)*time.Second)

	reservationQueue, err := queue.NewRedisStreamReservationQueue(rdb, cfg.Queue.ConsumerID, nil)
	if err != nil {
		log.Fatalf("Failed to initialize reservation queue: %v", err)
	}

	eventService := service.NewEventService(eventRepo, organizerRepo)
	zoneConfigService := service.NewZoneConfigService(eventRepo, zoneConfigRepo, occupancyManager)
	reservationService := service.NewReservationService(
		pool, reservationRepo, eventRepo, zoneConfigRepo,
		occupancyManager, reservationQueue, sessions,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reservationWorker := worker.NewReservationWorker(reservationService, reservationQueue)
	if err := reservationWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start reservation worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewZoneConfigHandler(zoneConfigService).RegisterRoutes(router)
	handler.NewReservationHandler(reservationService).RegisterRoutes(router)

	router.Run() // 預設 0.0.0.0:8080
}
