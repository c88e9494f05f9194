package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/trichess/trichess-backend/internal/controller"
	"github.com/trichess/trichess-backend/internal/middleware"
	"github.com/trichess/trichess-backend/internal/service"
)

func main() {
	app := fiber.New()

	allowOrigins := os.Getenv("TRICHESS_ALLOW_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{allowOrigins},
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)

	addr := os.Getenv("TRICHESS_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	log.Fatal(app.Listen(addr))
}
