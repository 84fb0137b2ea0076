package handlers

import (
	"errors"
	"noteboard-backend/internal/libraries"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/models"
	"noteboard-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

// BoardHandler serves the board endpoints. It talks to the repository
// directly; there is no service layer for plain CRUD.
type BoardHandler struct {
	repo      repo.BoardRepoInterface
	validator *Validator
	events    EventPublisher
	log       *logger.Logger
}

func NewBoardHandler(repo repo.BoardRepoInterface, events EventPublisher, log *logger.Logger) *BoardHandler {
	return &BoardHandler{
		repo:      repo,
		validator: NewValidator(),
		events:    publisherOrNoop(events),
		log:       log,
	}
}

// GetAllBoards lists a page of boards with their notes.
func (h *BoardHandler) GetAllBoards(c *fiber.Ctx) error {
	skip, limit, err := parsePaging(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	boards, err := h.repo.ListBoards(c.UserContext(), skip, limit)
	if err != nil {
		h.log.WithError(err).Error("Error getting boards")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to get boards")
	}

	out := make([]models.BoardOut, 0, len(boards))
	for i := range boards {
		out = append(out, models.NewBoardOut(&boards[i]))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// CreateBoard creates a board from the request body.
func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	var dto models.BoardCreate
	if ok, err := bindJSON(c, h.validator, &dto); !ok {
		return err
	}

	board := &models.Board{Name: dto.Name}
	if err := h.repo.CreateBoard(c.UserContext(), board); err != nil {
		h.log.WithError(err).Error("Error creating board")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create board")
	}

	out := models.NewBoardOut(board)
	h.events.Publish(libraries.EventBoardCreated, out)
	return c.Status(fiber.StatusOK).JSON(out)
}

// UpdateBoard applies the supplied fields to a board.
func (h *BoardHandler) UpdateBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid board ID")
	}

	var dto models.BoardUpdate
	if ok, err := bindJSON(c, h.validator, &dto); !ok {
		return err
	}

	board, err := h.repo.UpdateBoard(c.UserContext(), boardID, dto)
	if err != nil {
		// a missing board and a failed write are reported the same way
		if !errors.Is(err, repo.ErrBoardNotFound) {
			h.log.WithError(err).WithField("board_id", boardID).Error("Error updating board")
		}
		return errorJSON(c, fiber.StatusBadRequest, "Error during data update")
	}

	out := models.NewBoardOut(board)
	h.events.Publish(libraries.EventBoardUpdated, out)
	return c.Status(fiber.StatusOK).JSON(out)
}

// DeleteBoard deletes a board and its notes.
func (h *BoardHandler) DeleteBoard(c *fiber.Ctx) error {
	id, err := c.ParamsInt("boardId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid board ID")
	}

	// ids are positive, so zero and negative ids cannot match a row
	res := repo.DeleteResult{Outcome: repo.DeleteNotFound}
	boardID := uint(id)
	if id > 0 {
		res = h.repo.DeleteBoard(c.UserContext(), boardID)
	}
	switch res.Outcome {
	case repo.DeleteNotFound:
		return errorJSON(c, fiber.StatusNotFound, "Record not found")
	case repo.DeleteFailed:
		h.log.WithError(res.Err).WithField("board_id", boardID).Error("Error deleting board")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete board")
	}

	h.events.Publish(libraries.EventBoardDeleted, libraries.DeletedPayload{BoardID: boardID})
	return c.SendStatus(fiber.StatusNoContent)
}
