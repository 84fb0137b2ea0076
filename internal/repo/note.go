package repo

import (
	"context"
	"fmt"
	"noteboard-backend/internal/models"
	"time"

	"gorm.io/gorm"
)

type NoteRepo struct {
	db *gorm.DB
}

type NoteRepoInterface interface {
	ListNotes(ctx context.Context, skip, limit int) ([]models.Note, error)
	CreateNote(ctx context.Context, boardID uint, in models.NoteCreate) (*models.Note, error)
	GetNote(ctx context.Context, boardID, noteID uint) (*models.Note, error)
	UpdateNote(ctx context.Context, boardID, noteID uint, in models.NoteUpdate) (*models.Note, error)
	DeleteNote(ctx context.Context, boardID, noteID uint) (DeleteResult, error)
}

// NewNoteRepository returns a new instance of NoteRepo
func NewNoteRepository(db *gorm.DB) NoteRepoInterface {
	return &NoteRepo{db: db}
}

// noteBelongsToBoard reports whether a note with noteID exists and has
// board_id equal to boardID.
func noteBelongsToBoard(db *gorm.DB, boardID, noteID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Note{}).
		Where("id = ? AND board_id = ?", noteID, boardID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *NoteRepo) ListNotes(ctx context.Context, skip, limit int) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		InnerJoins("Board").
		Order("notes.id").
		Offset(skip).
		Limit(limit).
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepo) CreateNote(ctx context.Context, boardID uint, in models.NoteCreate) (*models.Note, error) {
	db := r.db.WithContext(ctx)

	exists, err := boardExists(db, boardID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBoardNotFound
	}

	note := &models.Note{
		BoardID: boardID,
		Title:   in.Title,
		Text:    in.Text,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(note).Error
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// GetNote bumps the view counter of a note and returns it.
func (r *NoteRepo) GetNote(ctx context.Context, boardID, noteID uint) (*models.Note, error) {
	db := r.db.WithContext(ctx)

	ok, err := noteBelongsToBoard(db, boardID, noteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoteNotOnBoard
	}

	var note models.Note
	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Note{}).
			Where("id = ?", noteID).
			Updates(map[string]interface{}{
				"views":      gorm.Expr("views + ?", 1),
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}
		return tx.First(&note, noteID).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepo) UpdateNote(ctx context.Context, boardID, noteID uint, in models.NoteUpdate) (*models.Note, error) {
	db := r.db.WithContext(ctx)

	ok, err := noteBelongsToBoard(db, boardID, noteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoteNotOnBoard
	}

	changes := in.Changes()
	changes["updated_at"] = time.Now()

	var note models.Note
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Note{}).Where("id = ?", noteID).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&note, noteID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	return &note, nil
}

func (r *NoteRepo) DeleteNote(ctx context.Context, boardID, noteID uint) (DeleteResult, error) {
	db := r.db.WithContext(ctx)

	ok, err := noteBelongsToBoard(db, boardID, noteID)
	if err != nil {
		return DeleteResult{}, err
	}
	if !ok {
		return DeleteResult{}, ErrNoteNotOnBoard
	}

	return deleteOneByID(db, &models.Note{}, noteID), nil
}
