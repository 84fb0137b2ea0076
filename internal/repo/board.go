package repo

import (
	"context"
	"fmt"
	"noteboard-backend/internal/models"
	"time"

	"gorm.io/gorm"
)

// BoardRepo represents the repository for the board model
type BoardRepo struct {
	db *gorm.DB
}

type BoardRepoInterface interface {
	ListBoards(ctx context.Context, skip, limit int) ([]models.Board, error)
	CreateBoard(ctx context.Context, board *models.Board) error
	UpdateBoard(ctx context.Context, id uint, in models.BoardUpdate) (*models.Board, error)
	DeleteBoard(ctx context.Context, id uint) DeleteResult
}

func NewBoardRepository(db *gorm.DB) BoardRepoInterface {
	return &BoardRepo{db: db}
}

func notesByID(db *gorm.DB) *gorm.DB {
	return db.Order("notes.id")
}

func boardExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Board{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListBoards returns a page of boards in insertion order, each with its notes
func (r *BoardRepo) ListBoards(ctx context.Context, skip, limit int) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.WithContext(ctx).
		Preload("Notes", notesByID).
		Order("boards.id").
		Offset(skip).
		Limit(limit).
		Find(&boards).Error
	return boards, err
}

// CreateBoard creates a new board in the database
func (r *BoardRepo) CreateBoard(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(board).Error
	})
}

// UpdateBoard applies the supplied fields to an existing board and returns
// the reloaded board.
func (r *BoardRepo) UpdateBoard(ctx context.Context, id uint, in models.BoardUpdate) (*models.Board, error) {
	db := r.db.WithContext(ctx)

	exists, err := boardExists(db, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBoardNotFound
	}

	changes := in.Changes()
	changes["updated_at"] = time.Now()

	var board models.Board
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Board{ID: id}).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Preload("Notes", notesByID).First(&board, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	return &board, nil
}

// DeleteBoard deletes a board; its notes are removed by the foreign key cascade.
func (r *BoardRepo) DeleteBoard(ctx context.Context, id uint) DeleteResult {
	return deleteOneByID(r.db.WithContext(ctx), &models.Board{}, id)
}
