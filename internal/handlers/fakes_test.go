package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"noteboard-backend/internal/libraries"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/models"
	"noteboard-backend/internal/repo"
)

// memStore implements both repository interfaces over maps, with the
// cascade and view counting of the real schema.
type memStore struct {
	mu        sync.Mutex
	boards    map[uint]models.Board
	notes     map[uint]models.Note
	nextBoard uint
	nextNote  uint
	now       time.Time

	// injected failures
	updateErr     error
	deleteOutcome *repo.DeleteResult
	listErr       error
}

func newMemStore() *memStore {
	return &memStore{
		boards: make(map[uint]models.Board),
		notes:  make(map[uint]models.Note),
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memStore) notesOf(boardID uint) []models.Note {
	var out []models.Note
	for _, n := range s.notes {
		if n.BoardID == boardID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (s *memStore) ListBoards(_ context.Context, skip, limit int) ([]models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	boards := make([]models.Board, 0, len(s.boards))
	for _, b := range s.boards {
		b.Notes = s.notesOf(b.ID)
		boards = append(boards, b)
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID < boards[j].ID })
	return page(boards, skip, limit), nil
}

func (s *memStore) CreateBoard(_ context.Context, board *models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBoard++
	now := s.tick()
	board.ID = s.nextBoard
	board.CreatedAt = now
	board.UpdatedAt = now
	s.boards[board.ID] = *board
	return nil
}

func (s *memStore) UpdateBoard(_ context.Context, id uint, in models.BoardUpdate) (*models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, repo.ErrBoardNotFound
	}
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if in.Name != nil {
		b.Name = *in.Name
	}
	b.UpdatedAt = s.tick()
	s.boards[id] = b
	b.Notes = s.notesOf(id)
	return &b, nil
}

func (s *memStore) DeleteBoard(_ context.Context, id uint) repo.DeleteResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteOutcome != nil {
		return *s.deleteOutcome
	}
	if _, ok := s.boards[id]; !ok {
		return repo.DeleteResult{Outcome: repo.DeleteNotFound}
	}
	delete(s.boards, id)
	for nid, n := range s.notes {
		if n.BoardID == id {
			delete(s.notes, nid)
		}
	}
	return repo.DeleteResult{Outcome: repo.DeleteDeleted}
}

func (s *memStore) ListNotes(_ context.Context, skip, limit int) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	notes := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		b := s.boards[n.BoardID]
		n.Board = &b
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return page(notes, skip, limit), nil
}

func (s *memStore) owned(boardID, noteID uint) bool {
	n, ok := s.notes[noteID]
	return ok && n.BoardID == boardID
}

func (s *memStore) CreateNote(_ context.Context, boardID uint, in models.NoteCreate) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[boardID]; !ok {
		return nil, repo.ErrBoardNotFound
	}
	s.nextNote++
	now := s.tick()
	n := models.Note{
		ID:        s.nextNote,
		Title:     in.Title,
		Text:      in.Text,
		BoardID:   boardID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes[n.ID] = n
	return &n, nil
}

func (s *memStore) GetNote(_ context.Context, boardID, noteID uint) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.owned(boardID, noteID) {
		return nil, repo.ErrNoteNotOnBoard
	}
	n := s.notes[noteID]
	n.Views++
	n.UpdatedAt = s.tick()
	s.notes[noteID] = n
	return &n, nil
}

func (s *memStore) UpdateNote(_ context.Context, boardID, noteID uint, in models.NoteUpdate) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.owned(boardID, noteID) {
		return nil, repo.ErrNoteNotOnBoard
	}
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	n := s.notes[noteID]
	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Text.Set {
		n.Text = in.Text.Value
	}
	n.UpdatedAt = s.tick()
	s.notes[noteID] = n
	return &n, nil
}

func (s *memStore) DeleteNote(_ context.Context, boardID, noteID uint) (repo.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.owned(boardID, noteID) {
		return repo.DeleteResult{}, repo.ErrNoteNotOnBoard
	}
	if s.deleteOutcome != nil {
		return *s.deleteOutcome, nil
	}
	delete(s.notes, noteID)
	return repo.DeleteResult{Outcome: repo.DeleteDeleted}, nil
}

type publishedEvent struct {
	Type libraries.EventType
	Data interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType libraries.EventType, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Data: data})
}

func (p *recordingPublisher) types() []libraries.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]libraries.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestApp(store *memStore, events EventPublisher) *fiber.App {
	log := logger.New("test", "error", io.Discard)
	boards := NewBoardHandler(store, events, log)
	notes := NewNoteHandler(store, events, log)

	app := fiber.New()
	app.Get("/boards/", boards.GetAllBoards)
	app.Post("/boards/", boards.CreateBoard)
	app.Put("/boards/:boardId/", boards.UpdateBoard)
	app.Delete("/boards/:boardId/", boards.DeleteBoard)
	app.Post("/boards/:boardId/notes/", notes.CreateNote)
	app.Get("/boards/:boardId/notes/:noteId/", notes.GetNote)
	app.Put("/boards/:boardId/notes/:noteId/", notes.UpdateNote)
	app.Delete("/boards/:boardId/notes/:noteId/", notes.DeleteNote)
	app.Get("/notes/", notes.GetAllNotes)
	return app
}

// makeRequest creates an HTTP test request with an optional JSON body
func makeRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	var raw []byte
	if s, ok := body.(string); ok {
		raw = []byte(s)
	} else {
		raw, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// do runs the request and decodes the JSON response into v when v is not nil
func do(t *testing.T, app *fiber.App, req *http.Request, v interface{}) int {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if v != nil {
		require.NoError(t, json.Unmarshal(raw, v), "body: %s", raw)
	}
	return resp.StatusCode
}
