package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBoardUpdateChanges(t *testing.T) {
	assert.Empty(t, BoardUpdate{}.Changes())
	assert.Equal(t, map[string]interface{}{"name": "X"}, BoardUpdate{Name: strPtr("X")}.Changes())
}

func TestNoteUpdateChanges(t *testing.T) {
	assert.Empty(t, NoteUpdate{}.Changes())
	assert.Equal(t, map[string]interface{}{"text": "body"}, NoteUpdate{Text: NullableOf("body")}.Changes())
	assert.Equal(t,
		map[string]interface{}{"title": "T", "text": ""},
		NoteUpdate{Title: strPtr("T"), Text: NullableOf("")}.Changes(),
	)
	assert.Equal(t, map[string]interface{}{"text": nil}, NoteUpdate{Text: Nullable[string]{Set: true}}.Changes())
}

func TestNoteUpdateDecodesTextPresence(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		set   bool
		value *string
	}{
		{"absent", `{"title":"T"}`, false, nil},
		{"explicit null", `{"text":null}`, true, nil},
		{"value", `{"text":"body"}`, true, strPtr("body")},
		{"empty string", `{"text":""}`, true, strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u NoteUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, tt.set, u.Text.Set)
			assert.Equal(t, tt.value, u.Text.Value)
		})
	}
}

func TestNoteUpdateRejectsWrongTextType(t *testing.T) {
	var u NoteUpdate
	assert.Error(t, json.Unmarshal([]byte(`{"text":5}`), &u))
}

func TestNewBoardOutAlwaysHasNotesArray(t *testing.T) {
	out := NewBoardOut(&Board{ID: 1, Name: "B1"})

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"notes":[]`)
}

func TestNewBoardOutCopiesNotes(t *testing.T) {
	b := &Board{
		ID:   3,
		Name: "B3",
		Notes: []Note{
			{ID: 7, Title: "a", BoardID: 3, Views: 2},
			{ID: 8, Title: "b", BoardID: 3},
		},
	}

	out := NewBoardOut(b)
	require.Len(t, out.Notes, 2)
	assert.Equal(t, uint(7), out.Notes[0].ID)
	assert.Equal(t, 2, out.Notes[0].Views)
	assert.Equal(t, uint(3), out.Notes[1].BoardID)
}

func TestNewNoteBoardOutOmitsBoardID(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	n := &Note{
		ID:        1,
		Title:     "T1",
		Text:      strPtr("hi"),
		BoardID:   4,
		CreatedAt: now,
		UpdatedAt: now,
		Board:     &Board{ID: 4, Name: "B4", CreatedAt: now, UpdatedAt: now, Notes: []Note{{ID: 1}}},
	}

	raw, err := json.Marshal(NewNoteBoardOut(n))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.NotContains(t, decoded, "board_id")
	board, ok := decoded["board"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "B4", board["name"])
	assert.NotContains(t, board, "notes")
}

func TestNewNoteOutNullText(t *testing.T) {
	raw, err := json.Marshal(NewNoteOut(&Note{ID: 2, Title: "x", BoardID: 1}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"text":null`)
	assert.Contains(t, string(raw), `"board_id":1`)
}
