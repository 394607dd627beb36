package reconcile

import (
	"context"
	"errors"
	"fmt"

	"quiz-manager/feature/quiz/models"
	"quiz-manager/feature/quiz/store"

	"go.uber.org/zap"
)

// Sync merges a client-submitted batch into the store and returns the
// resulting public set.
//
// Public quizzes with a uniqueId are upserted: an existing record is
// patched (version bump), a missing one is created with the submitted
// uniqueId. Public quizzes without a uniqueId are skipped and logged — a
// uniqueId is mandatory for anything persisted via sync. Private quizzes
// with a uniqueId delete their stored counterpart, and a final sweep
// removes every stored private quiz regardless of how it got in.
//
// Sync does not deduplicate; callers invoke Deduplicate afterwards when
// they want duplicates collapsed.
func Sync(ctx context.Context, st store.Store, logger *zap.Logger, batch []models.Quiz) ([]models.Quiz, error) {
	for _, submitted := range batch {
		if !submitted.IsPublic {
			continue
		}
		if submitted.UniqueID == "" {
			logger.Warn("Skipping public quiz without uniqueId",
				zap.String("title", submitted.Title),
			)
			continue
		}
		if err := upsert(ctx, st, submitted); err != nil {
			return nil, err
		}
	}

	// Quizzes the client made private disappear from shared storage.
	for _, submitted := range batch {
		if submitted.IsPublic || submitted.UniqueID == "" {
			continue
		}
		if _, err := st.DeleteByUniqueID(ctx, submitted.UniqueID); err != nil {
			return nil, fmt.Errorf("failed to remove private quiz %q: %w", submitted.UniqueID, err)
		}
	}

	if err := sweepPrivate(ctx, st); err != nil {
		return nil, err
	}

	return st.ListPublic(ctx)
}

// upsert updates the stored quiz matching the submitted uniqueId, or
// creates it when absent.
func upsert(ctx context.Context, st store.Store, submitted models.Quiz) error {
	existing, err := st.GetByUniqueID(ctx, submitted.UniqueID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to look up quiz %q: %w", submitted.UniqueID, err)
		}
		submitted.ID = 0
		if _, err := st.Create(ctx, submitted); err != nil {
			return fmt.Errorf("failed to create synced quiz %q: %w", submitted.UniqueID, err)
		}
		return nil
	}

	patch := models.QuizPatch{
		Title:     &submitted.Title,
		Questions: &submitted.Questions,
		IsPublic:  &submitted.IsPublic,
	}
	if submitted.LastTaken != nil {
		patch.LastTaken = submitted.LastTaken
	}
	if submitted.History != nil {
		patch.History = &submitted.History
	}
	if _, err := st.Update(ctx, existing.ID, patch); err != nil {
		return fmt.Errorf("failed to update synced quiz %q: %w", submitted.UniqueID, err)
	}
	return nil
}

// sweepPrivate removes every stored private quiz. This catches records
// that slipped in via direct creation rather than sync.
func sweepPrivate(ctx context.Context, st store.Store) error {
	all, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list quizzes for private sweep: %w", err)
	}
	for _, q := range all {
		if q.IsPublic {
			continue
		}
		if _, err := st.Delete(ctx, q.ID); err != nil {
			return fmt.Errorf("failed to sweep private quiz %d: %w", q.ID, err)
		}
	}
	return nil
}
