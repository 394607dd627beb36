package store

import (
	"context"
	"errors"
	"fmt"

	"quiz-manager/feature/quiz/models"

	"gorm.io/gorm"
)

// Gorm is a Store persisted through GORM. It works against MySQL in
// production and SQLite in tests (see core/database).
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates a GORM-backed store and ensures the quizzes table exists.
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&models.QuizRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate quizzes table: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (s *Gorm) GetByID(ctx context.Context, id int) (*models.Quiz, error) {
	var rec models.QuizRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %d: %w", id, err)
	}
	q := rec.ToQuiz()
	return &q, nil
}

func (s *Gorm) GetByUniqueID(ctx context.Context, uid string) (*models.Quiz, error) {
	var rec models.QuizRecord
	err := s.db.WithContext(ctx).First(&rec, "unique_id = ?", uid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %q: %w", uid, err)
	}
	q := rec.ToQuiz()
	return &q, nil
}

func (s *Gorm) List(ctx context.Context) ([]models.Quiz, error) {
	var recs []models.QuizRecord
	if err := s.db.WithContext(ctx).Order("id asc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return toQuizzes(recs), nil
}

func (s *Gorm) ListPublic(ctx context.Context) ([]models.Quiz, error) {
	var recs []models.QuizRecord
	err := s.db.WithContext(ctx).Where("is_public = ?", true).Order("id asc").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list public quizzes: %w", err)
	}
	return toQuizzes(recs), nil
}

func (s *Gorm) Create(ctx context.Context, q models.Quiz) (*models.Quiz, error) {
	q.ID = 0 // the database assigns identity
	defaultNewQuiz(&q)

	rec := models.RecordFromQuiz(q)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	created := rec.ToQuiz()
	return &created, nil
}

func (s *Gorm) Update(ctx context.Context, id int, patch models.QuizPatch) (*models.Quiz, error) {
	// Read-modify-write inside one transaction so the version bump and the
	// field merge are atomic per call.
	var updated models.Quiz
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.QuizRecord
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load quiz %d: %w", id, err)
		}

		q := rec.ToQuiz()
		applyPatch(&q, patch)

		next := models.RecordFromQuiz(q)
		if err := tx.Save(&next).Error; err != nil {
			return fmt.Errorf("failed to save quiz %d: %w", id, err)
		}
		updated = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Gorm) Delete(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.QuizRecord{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete quiz %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Gorm) DeleteByUniqueID(ctx context.Context, uid string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.QuizRecord{}, "unique_id = ?", uid)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete quiz %q: %w", uid, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func toQuizzes(recs []models.QuizRecord) []models.Quiz {
	out := make([]models.Quiz, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToQuiz())
	}
	return out
}
