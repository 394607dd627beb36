package store

import (
	"context"
	"errors"

	"quiz-manager/feature/quiz/models"
)

// ErrNotFound is returned by lookups, updates, and deletes that target a
// quiz that is not in the store. It is an outcome, not a fault.
var ErrNotFound = errors.New("quiz not found")

// Store is the set of CRUD primitives the reconciliation engine is built
// on. Each call is atomic on its own; multi-call sequences (sync, cleanup)
// are NOT atomic and must be serialized by the caller.
//
// List and ListPublic return quizzes ordered by ascending ID so that
// reconciliation passes are deterministic.
type Store interface {
	// GetByID returns the quiz with the given storage ID.
	GetByID(ctx context.Context, id int) (*models.Quiz, error)

	// GetByUniqueID returns the quiz with the given unique identity token.
	GetByUniqueID(ctx context.Context, uid string) (*models.Quiz, error)

	// List returns every stored quiz, public and private.
	List(ctx context.Context) ([]models.Quiz, error)

	// ListPublic returns every stored quiz with IsPublic set.
	ListPublic(ctx context.Context) ([]models.Quiz, error)

	// Create persists a new quiz. It assigns the ID, generates a UniqueID
	// when the quiz has none, defaults Version to the submitted value or 1,
	// and stamps CreatedAt when unset. Returns the stored quiz.
	Create(ctx context.Context, q models.Quiz) (*models.Quiz, error)

	// Update merges the non-nil patch fields over the stored quiz and bumps
	// Version by exactly 1 (or sets it to 1 when the stored version was
	// absent). Returns ErrNotFound when the ID is unknown; nothing is
	// mutated in that case.
	Update(ctx context.Context, id int, patch models.QuizPatch) (*models.Quiz, error)

	// Delete removes the quiz with the given ID. The bool reports whether
	// a record was actually removed.
	Delete(ctx context.Context, id int) (bool, error)

	// DeleteByUniqueID removes the quiz with the given unique identity.
	DeleteByUniqueID(ctx context.Context, uid string) (bool, error)
}

// applyPatch merges patch fields over q and bumps the version counter.
// Shared by both store implementations so merge semantics exist once.
func applyPatch(q *models.Quiz, patch models.QuizPatch) {
	if patch.Title != nil {
		q.Title = *patch.Title
	}
	if patch.Questions != nil {
		q.Questions = *patch.Questions
	}
	if patch.IsPublic != nil {
		q.IsPublic = *patch.IsPublic
	}
	if patch.Password != nil {
		q.Password = *patch.Password
	}
	if patch.LastTaken != nil {
		q.LastTaken = patch.LastTaken
	}
	if patch.History != nil {
		q.History = *patch.History
	}
	if q.Version <= 0 {
		q.Version = 1
	} else {
		q.Version++
	}
}
