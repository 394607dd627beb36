package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"quiz-manager/feature/quiz/models"

	"github.com/google/uuid"
)

// Memory is an in-process Store backed by a mutex-guarded map. It is used
// by tests and as a fallback when no database is configured.
type Memory struct {
	mu      sync.Mutex
	quizzes map[int]models.Quiz
	nextID  int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		quizzes: make(map[int]models.Quiz),
		nextID:  1,
	}
}

func (s *Memory) GetByID(ctx context.Context, id int) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quizzes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneQuiz(q)
	return &out, nil
}

func (s *Memory) GetByUniqueID(ctx context.Context, uid string) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.quizzes {
		if q.UniqueID == uid {
			out := cloneQuiz(q)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) List(ctx context.Context) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(models.Quiz) bool { return true }), nil
}

func (s *Memory) ListPublic(ctx context.Context) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(q models.Quiz) bool { return q.IsPublic }), nil
}

func (s *Memory) Create(ctx context.Context, q models.Quiz) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = s.nextID
	s.nextID++
	defaultNewQuiz(&q)

	s.quizzes[q.ID] = cloneQuiz(q)
	out := cloneQuiz(q)
	return &out, nil
}

func (s *Memory) Update(ctx context.Context, id int, patch models.QuizPatch) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quizzes[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyPatch(&q, patch)
	s.quizzes[id] = cloneQuiz(q)
	out := cloneQuiz(q)
	return &out, nil
}

func (s *Memory) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[id]; !ok {
		return false, nil
	}
	delete(s.quizzes, id)
	return true, nil
}

func (s *Memory) DeleteByUniqueID(ctx context.Context, uid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, q := range s.quizzes {
		if q.UniqueID == uid {
			delete(s.quizzes, id)
			return true, nil
		}
	}
	return false, nil
}

// snapshot returns matching quizzes ordered by ascending ID.
// Callers must hold the mutex.
func (s *Memory) snapshot(match func(models.Quiz) bool) []models.Quiz {
	out := make([]models.Quiz, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		if match(q) {
			out = append(out, cloneQuiz(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// defaultNewQuiz fills the create-time defaults shared with the GORM store.
func defaultNewQuiz(q *models.Quiz) {
	if q.UniqueID == "" {
		q.UniqueID = uuid.NewString()
	}
	if q.Version <= 0 {
		q.Version = 1
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	if q.Questions == nil {
		q.Questions = []models.Question{}
	}
}

// cloneQuiz deep-copies a quiz so callers never alias stored slices.
func cloneQuiz(q models.Quiz) models.Quiz {
	out := q
	out.Questions = make([]models.Question, len(q.Questions))
	for i, question := range q.Questions {
		cp := question
		cp.Options = append([]string(nil), question.Options...)
		cp.Images = append([]string(nil), question.Images...)
		out.Questions[i] = cp
	}
	if q.History != nil {
		out.History = append([]models.Attempt(nil), q.History...)
	}
	if q.LastTaken != nil {
		t := *q.LastTaken
		out.LastTaken = &t
	}
	return out
}
