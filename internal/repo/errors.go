package repo

import (
	"errors"
)

var (
	// ErrBoardNotFound is returned when the addressed board does not exist.
	ErrBoardNotFound = errors.New("board not found")
	// ErrNoteNotOnBoard is returned when no note with the given id belongs
	// to the given board.
	ErrNoteNotOnBoard = errors.New("note does not reference the board")
	// ErrUpdateFailed wraps a failed update statement. The transaction has
	// already been rolled back when it is returned.
	ErrUpdateFailed = errors.New("update failed")
)
