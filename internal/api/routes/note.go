package routes

import (
	"noteboard-backend/internal/handlers"
	"noteboard-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerNote(r fiber.Router, deps Deps) {
	noteRepo := repo.NewNoteRepository(deps.DB)
	noteHandler := handlers.NewNoteHandler(noteRepo, publisher(deps), deps.Log)

	r.Post("/boards/:boardId/notes/", noteHandler.CreateNote)
	r.Get("/boards/:boardId/notes/:noteId/", noteHandler.GetNote)
	r.Put("/boards/:boardId/notes/:noteId/", noteHandler.UpdateNote)
	r.Delete("/boards/:boardId/notes/:noteId/", noteHandler.DeleteNote)
	r.Get("/notes/", noteHandler.GetAllNotes)
}
