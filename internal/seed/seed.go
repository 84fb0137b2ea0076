package seed

import (
	"context"
	"fmt"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/models"
	"noteboard-backend/internal/repo"
)

const (
	DefaultBoards        = 11
	DefaultNotesPerBoard = 5
)

type Options struct {
	Boards        int
	NotesPerBoard int
}

// Run fills the store with demo boards, each carrying NotesPerBoard notes.
// Boards and notes are numbered from zero.
func Run(ctx context.Context, boards repo.BoardRepoInterface, notes repo.NoteRepoInterface, opts Options, log *logger.Logger) error {
	if opts.Boards < 0 || opts.NotesPerBoard < 0 {
		return fmt.Errorf("invalid seed options: boards=%d notes=%d", opts.Boards, opts.NotesPerBoard)
	}

	for x := 0; x < opts.Boards; x++ {
		board := &models.Board{Name: fmt.Sprintf("Board %d", x)}
		if err := boards.CreateBoard(ctx, board); err != nil {
			return fmt.Errorf("failed to create board %d: %w", x, err)
		}

		for i := 0; i < opts.NotesPerBoard; i++ {
			text := fmt.Sprintf("Simple text %d-%d", x, i)
			_, err := notes.CreateNote(ctx, board.ID, models.NoteCreate{
				Title: fmt.Sprintf("Title %d-%d", x, i),
				Text:  &text,
			})
			if err != nil {
				return fmt.Errorf("failed to create note %d-%d: %w", x, i, err)
			}
		}

		log.WithField("board_id", board.ID).Debug("board seeded")
	}

	log.WithField("boards", opts.Boards).WithField("notes_per_board", opts.NotesPerBoard).Info("seeding completed")
	return nil
}
