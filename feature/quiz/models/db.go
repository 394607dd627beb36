package models

import (
	"encoding/json"
	"time"
)

// QuizRecord represents the 'quizzes' table. Questions and history are
// serialized to JSON columns so the record survives both MySQL and SQLite
// without satellite tables.
type QuizRecord struct {
	ID        int        `gorm:"column:id;primaryKey;autoIncrement"`
	UniqueID  string     `gorm:"column:unique_id;index"`
	Title     string     `gorm:"column:title"`
	Questions string     `gorm:"column:questions;type:text"`
	IsPublic  bool       `gorm:"column:is_public;index"`
	Password  string     `gorm:"column:password"`
	Version   int        `gorm:"column:version"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	LastTaken *time.Time `gorm:"column:last_taken"`
	History   string     `gorm:"column:history;type:text"`
}

// TableName overrides the table name used by GORM.
func (QuizRecord) TableName() string {
	return "quizzes"
}

// ToQuiz deserializes the record into a domain quiz.
func (r QuizRecord) ToQuiz() Quiz {
	q := Quiz{
		ID:        r.ID,
		UniqueID:  r.UniqueID,
		Title:     r.Title,
		IsPublic:  r.IsPublic,
		Password:  r.Password,
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		LastTaken: r.LastTaken,
	}
	if r.Questions != "" {
		// Columns are only ever written by RecordFromQuiz, so a decode
		// failure means manual tampering; fall back to an empty list.
		_ = json.Unmarshal([]byte(r.Questions), &q.Questions)
	}
	if q.Questions == nil {
		q.Questions = []Question{}
	}
	if r.History != "" {
		_ = json.Unmarshal([]byte(r.History), &q.History)
	}
	return q
}

// RecordFromQuiz serializes a domain quiz into a table record.
func RecordFromQuiz(q Quiz) QuizRecord {
	r := QuizRecord{
		ID:        q.ID,
		UniqueID:  q.UniqueID,
		Title:     q.Title,
		IsPublic:  q.IsPublic,
		Password:  q.Password,
		Version:   q.Version,
		CreatedAt: q.CreatedAt,
		LastTaken: q.LastTaken,
	}
	questions := q.Questions
	if questions == nil {
		questions = []Question{}
	}
	if data, err := json.Marshal(questions); err == nil {
		r.Questions = string(data)
	}
	if len(q.History) > 0 {
		if data, err := json.Marshal(q.History); err == nil {
			r.History = string(data)
		}
	}
	return r
}
