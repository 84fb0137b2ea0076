package routes

import (
	"noteboard-backend/internal/handlers"
	"noteboard-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerBoard(r fiber.Router, deps Deps) {
	// Initialize handler
	boardRepo := repo.NewBoardRepository(deps.DB)
	boardHandler := handlers.NewBoardHandler(boardRepo, publisher(deps), deps.Log)

	// Register routes
	r.Get("/boards/", boardHandler.GetAllBoards)
	r.Post("/boards/", boardHandler.CreateBoard)
	r.Put("/boards/:boardId/", boardHandler.UpdateBoard)
	r.Delete("/boards/:boardId/", boardHandler.DeleteBoard)
}
