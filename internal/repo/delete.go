package repo

import (
	"gorm.io/gorm"
)

type DeleteOutcome int

const (
	DeleteNotFound DeleteOutcome = iota
	DeleteDeleted
	DeleteFailed
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteNotFound:
		return "not_found"
	case DeleteDeleted:
		return "deleted"
	case DeleteFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DeleteResult is the outcome of deleting a single row. Err is only set
// when Outcome is DeleteFailed.
type DeleteResult struct {
	Outcome DeleteOutcome
	Err     error
}

// deleteOneByID deletes at most one row of model's table by primary key
// inside its own transaction.
func deleteOneByID(db *gorm.DB, model interface{}, id uint) DeleteResult {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(model, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return DeleteResult{Outcome: DeleteFailed, Err: err}
	}
	if affected == 0 {
		return DeleteResult{Outcome: DeleteNotFound}
	}
	return DeleteResult{Outcome: DeleteDeleted}
}
