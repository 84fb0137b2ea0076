package handlers

import (
	"errors"
	"noteboard-backend/internal/libraries"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/models"
	"noteboard-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NoteHandler serves the note endpoints.
type NoteHandler struct {
	repo      repo.NoteRepoInterface
	validator *Validator
	events    EventPublisher
	log       *logger.Logger
}

func NewNoteHandler(repo repo.NoteRepoInterface, events EventPublisher, log *logger.Logger) *NoteHandler {
	return &NoteHandler{
		repo:      repo,
		validator: NewValidator(),
		events:    publisherOrNoop(events),
		log:       log,
	}
}

// noteIDs reads boardId and noteId from the path.
func noteIDs(c *fiber.Ctx) (boardID, noteID uint, err error) {
	if boardID, err = parseID(c, "boardId"); err != nil {
		return 0, 0, errors.New("Invalid board ID")
	}
	if noteID, err = parseID(c, "noteId"); err != nil {
		return 0, 0, errors.New("Invalid note ID")
	}
	return boardID, noteID, nil
}

// GetAllNotes lists notes of every board together with their board.
func (h *NoteHandler) GetAllNotes(c *fiber.Ctx) error {
	skip, limit, err := parsePaging(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	notes, err := h.repo.ListNotes(c.UserContext(), skip, limit)
	if err != nil {
		h.log.WithError(err).Error("Error getting notes")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to get notes")
	}

	out := make([]models.NoteBoardOut, 0, len(notes))
	for i := range notes {
		out = append(out, models.NewNoteBoardOut(&notes[i]))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// CreateNote adds a note to an existing board.
func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid board ID")
	}

	var dto models.NoteCreate
	if ok, err := bindJSON(c, h.validator, &dto); !ok {
		return err
	}

	note, err := h.repo.CreateNote(c.UserContext(), boardID, dto)
	if errors.Is(err, repo.ErrBoardNotFound) {
		return errorJSON(c, fiber.StatusBadRequest, "Board is not found")
	}
	if err != nil {
		h.log.WithError(err).WithField("board_id", boardID).Error("Error creating note")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create note")
	}

	out := models.NewNoteOut(note)
	h.events.Publish(libraries.EventNoteCreated, out)
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetNote returns a note and counts the view.
func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	boardID, noteID, err := noteIDs(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	note, err := h.repo.GetNote(c.UserContext(), boardID, noteID)
	if errors.Is(err, repo.ErrNoteNotOnBoard) {
		return errorJSON(c, fiber.StatusBadRequest, "One of the passed identifiers is not found")
	}
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"board_id": boardID, "note_id": noteID}).Error("Error getting note")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to get note")
	}

	return c.Status(fiber.StatusOK).JSON(models.NewNoteOut(note))
}

// UpdateNote applies the supplied fields to a note on the given board.
func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	boardID, noteID, err := noteIDs(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	var dto models.NoteUpdate
	if ok, err := bindJSON(c, h.validator, &dto); !ok {
		return err
	}

	note, err := h.repo.UpdateNote(c.UserContext(), boardID, noteID, dto)
	if errors.Is(err, repo.ErrNoteNotOnBoard) {
		return errorJSON(c, fiber.StatusBadRequest, "Incorrect parameters")
	}
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"board_id": boardID, "note_id": noteID}).Error("Error updating note")
		return errorJSON(c, fiber.StatusInternalServerError, "An error occurred while updating data")
	}

	out := models.NewNoteOut(note)
	h.events.Publish(libraries.EventNoteUpdated, out)
	return c.Status(fiber.StatusOK).JSON(out)
}

// DeleteNote deletes a note on the given board.
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	boardID, noteID, err := noteIDs(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.repo.DeleteNote(c.UserContext(), boardID, noteID)
	if errors.Is(err, repo.ErrNoteNotOnBoard) {
		return errorJSON(c, fiber.StatusBadRequest, "The note does not reference the board")
	}
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"board_id": boardID, "note_id": noteID}).Error("Error deleting note")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete note")
	}

	switch res.Outcome {
	case repo.DeleteNotFound:
		return errorJSON(c, fiber.StatusNotFound, "Record not found")
	case repo.DeleteFailed:
		h.log.WithError(res.Err).WithFields(logrus.Fields{"board_id": boardID, "note_id": noteID}).Error("Error deleting note")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete note")
	}

	h.events.Publish(libraries.EventNoteDeleted, libraries.DeletedPayload{BoardID: boardID, NoteID: &noteID})
	return c.SendStatus(fiber.StatusNoContent)
}
