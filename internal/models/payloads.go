package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Request bodies. Update payloads use pointers so that only the fields
// present in the JSON body are written.

type BoardCreate struct {
	Name string `json:"name" validate:"required,max=250"`
}

type BoardUpdate struct {
	Name *string `json:"name" validate:"omitempty,max=250"`
}

// Changes returns the column assignments for the supplied fields.
func (u BoardUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	return changes
}

type NoteCreate struct {
	Title string  `json:"title" validate:"required,max=250"`
	Text  *string `json:"text"`
}

// Nullable records whether a JSON field was present, so that an explicit
// null can be told apart from an absent field.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

type NoteUpdate struct {
	Title *string          `json:"title" validate:"omitempty,max=250"`
	Text  Nullable[string] `json:"text"`
}

// Changes returns the column assignments for the supplied fields.
func (u NoteUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Text.Set {
		if u.Text.Value == nil {
			changes["text"] = nil
		} else {
			changes["text"] = *u.Text.Value
		}
	}
	return changes
}

// Response bodies

type NoteOut struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Text      *string   `json:"text"`
	Views     int       `json:"views"`
	BoardID   uint      `json:"board_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BoardOut struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     []NoteOut `json:"notes"`
}

// BoardSummary is a board without its notes.
type BoardSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteBoardOut is the cross-board listing shape: the owning board is
// embedded and the raw board_id is left out.
type NoteBoardOut struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Text      *string      `json:"text"`
	Views     int          `json:"views"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Board     BoardSummary `json:"board"`
}

func NewNoteOut(n *Note) NoteOut {
	return NoteOut{
		ID:        n.ID,
		Title:     n.Title,
		Text:      n.Text,
		Views:     n.Views,
		BoardID:   n.BoardID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func NewBoardOut(b *Board) BoardOut {
	notes := make([]NoteOut, 0, len(b.Notes))
	for i := range b.Notes {
		notes = append(notes, NewNoteOut(&b.Notes[i]))
	}
	return BoardOut{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Notes:     notes,
	}
}

func NewBoardSummary(b *Board) BoardSummary {
	return BoardSummary{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func NewNoteBoardOut(n *Note) NoteBoardOut {
	out := NoteBoardOut{
		ID:        n.ID,
		Title:     n.Title,
		Text:      n.Text,
		Views:     n.Views,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Board != nil {
		out.Board = NewBoardSummary(n.Board)
	}
	return out
}
