package models

import "time"

// Quiz is a stored quiz record.
//
// ID is assigned by the storage layer and never supplied by clients.
// UniqueID is the cross-device identity token for the quiz; two records
// sharing a UniqueID are the same logical quiz at different versions.
type Quiz struct {
	// ID is the storage-assigned identity, immutable once assigned.
	ID int `json:"id"`
	// UniqueID is the globally unique identity token. Generated on create
	// when the client did not supply one.
	UniqueID string `json:"uniqueId"`
	// Title is the display name of the quiz.
	Title string `json:"title"`
	// Questions is the ordered list of questions.
	Questions []Question `json:"questions"`
	// IsPublic marks the quiz as shareable. Only public quizzes are
	// retained in server storage beyond a single sync.
	IsPublic bool `json:"isPublic"`
	// Password optionally protects edits to the quiz.
	Password string `json:"password,omitempty"`
	// Version starts at 1 and is incremented by exactly 1 on every update.
	Version int `json:"version"`
	// CreatedAt is set once when the record is created.
	CreatedAt time.Time `json:"createdAt"`
	// LastTaken records the most recent attempt. Not used by reconciliation.
	LastTaken *time.Time `json:"lastTaken,omitempty"`
	// History holds past attempt scores. Not used by reconciliation.
	History []Attempt `json:"history,omitempty"`
}

// Question is a single quiz question.
type Question struct {
	// Prompt is the question text.
	Prompt string `json:"prompt"`
	// Options is the ordered set of answer options.
	Options []string `json:"options"`
	// Answer is the correct option text.
	Answer string `json:"answer"`
	// Images holds object names of attached images (see core/storage).
	Images []string `json:"images,omitempty"`
}

// Attempt is one historical quiz run.
type Attempt struct {
	TakenAt time.Time `json:"takenAt"`
	Score   int       `json:"score"`
	Total   int       `json:"total"`
}

// QuizPatch describes a partial update. Nil fields are left untouched;
// the storage layer bumps Version on every applied patch.
type QuizPatch struct {
	Title     *string     `json:"title"`
	Questions *[]Question `json:"questions"`
	IsPublic  *bool       `json:"isPublic"`
	Password  *string     `json:"password"`
	LastTaken *time.Time  `json:"lastTaken"`
	History   *[]Attempt  `json:"history"`
}

// SyncRequest is the batch payload accepted by the sync endpoint.
type SyncRequest struct {
	Quizzes []Quiz `json:"quizzes" validate:"required,dive"`
}

// SyncResponse is the full public set after sync and cleanup.
type SyncResponse struct {
	Quizzes []Quiz `json:"quizzes"`
	Removed int    `json:"removed"`
}

// CleanupResponse reports the outcome of a deduplication run.
type CleanupResponse struct {
	Removed int `json:"removed"`
}

// CreateQuizRequest is the payload for direct quiz creation.
type CreateQuizRequest struct {
	Title     string     `json:"title" validate:"required"`
	Questions []Question `json:"questions" validate:"required"`
	IsPublic  bool       `json:"isPublic"`
	UniqueID  string     `json:"uniqueId"`
	Password  string     `json:"password"`
}

// ToQuiz converts the request into a quiz record ready for storage.
func (r CreateQuizRequest) ToQuiz() Quiz {
	return Quiz{
		UniqueID:  r.UniqueID,
		Title:     r.Title,
		Questions: r.Questions,
		IsPublic:  r.IsPublic,
		Password:  r.Password,
	}
}
