package main

import (
	"log"
	"time"

	"flight-planner/config"
	"flight-planner/handlers"
	"flight-planner/models"
	"flight-planner/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment")
	}
	cfg := config.Load()

	desc := services.ReferenceScene()
	if cfg.SceneFile != "" {
		loaded, err := services.LoadSceneFile(cfg.SceneFile)
		if err != nil {
			log.Fatalf("❌ scene load failed: %v", err)
		}
		desc = loaded
	}
	scene, err := services.BuildScene(desc, cfg.SceneResolution)
	if err != nil {
		log.Fatalf("❌ scene build failed: %v", err)
	}
	size := scene.Size()
	log.Printf("✅ scene ready: %dx%dx%d cells, %d occupied", size[0], size[1], size[2], scene.OccupiedCount())

	db, err := services.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ database init failed: %v", err)
	}

	logs := services.NewPlanLogBuffer(db, cfg.LogFlushSize, cfg.LogFlushInterval)
	defer logs.Stop()

	metrics := services.NewMetrics(prometheus.DefaultRegisterer)

	hub := handlers.NewClientManager()
	go hub.Start()
	agents := handlers.NewAgentManager()

	planner := services.NewPlanner(scene, desc, metrics, logs, hub)

	pathfinding := handlers.NewPathfindingHandler(planner, agents, cfg.PlanTimeout)
	logsHandler := handlers.NewLogsHandler(db, logs)
	ws := handlers.NewWebSocketHandler(hub, agents)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("flight planner is running")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	startedAt := time.Now()
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"env":     cfg.Environment,
			"clients": hub.GetClientCount(),
			"uptime":  int64(time.Since(startedAt).Seconds()),
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api.Get("/scene", pathfinding.HandleScene)
	api.Post("/plan", pathfinding.HandlePlan)
	api.Post("/land", pathfinding.HandleLand)
	api.Get("/agents", pathfinding.HandleAgents)
	api.Post("/agents/:id/land", pathfinding.HandleAgentLand)

	logsAPI := api.Group("/logs")
	logsAPI.Get("/recent", logsHandler.HandleGetRecentLogs)
	logsAPI.Get("/status", logsHandler.HandleGetLogsByStatus)
	logsAPI.Get("/stats", logsHandler.HandleGetLogStats)

	app.Use("/websocket", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/websocket/agent", websocket.New(ws.HandleAgentWebSocket))
	app.Get("/websocket/web", websocket.New(ws.HandleWebClientWebSocket))

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			hub.BroadcastMessage(models.WebSocketMessage{
				Type: models.MessageTypeSystemInfo,
				Data: models.SystemInfo{
					ConnectedClients: hub.GetClientCount(),
					Uptime:           int64(time.Since(startedAt).Seconds()),
				},
			})
		}
	}()

	log.Printf("🚀 server listening on :%s", cfg.Port)
	log.Printf("📡 websocket: ws://localhost:%s/websocket/{agent,web}", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("🛑 server stopped: %v", err)
	}
}
