package store_test

import (
	"context"
	"testing"
	"time"

	"quiz-manager/core/database"
	"quiz-manager/feature/quiz/models"
	"quiz-manager/feature/quiz/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachStore runs the same test against the in-memory and the
// SQLite-backed store so both honor the same contract.
func forEachStore(t *testing.T, test func(t *testing.T, st store.Store)) {
	t.Run("Memory", func(t *testing.T) {
		test(t, store.NewMemory())
	})

	t.Run("Gorm", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		st, err := store.NewGorm(db)
		require.NoError(t, err)
		test(t, st)
	})
}

func TestStore_CreateDefaults(t *testing.T) {
	forEachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()

		created, err := st.Create(ctx, models.Quiz{Title: "Math Quiz", IsPublic: true})
		require.NoError(t, err)

		assert.NotZero(t, created.ID)
		assert.NotEmpty(t, created.UniqueID)
		assert.Equal(t, 1, created.Version)
		assert.False(t, created.CreatedAt.IsZero())
		assert.NotNil(t, created.Questions)
	})
}

func TestStore_CreateKeepsSubmittedIdentity(t *testing.T) {
	forEachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		created, err := st.Create(ctx, models.Quiz{
			Title:     "Math Quiz",
			UniqueID:  "u1",
			Version:   4,
			CreatedAt: createdAt,
		})
		require.NoError(t, err)

		assert.Equal(t, "u1", created.UniqueID)
		assert.Equal(t, 4, created.Version)
		assert.True(t, created.CreatedAt.Equal(createdAt))
	})
}

func TestStore_GetByIDAndUniqueID(t *testing.T) {
	forEachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()

		created, err := st.Create(ctx, models.Quiz{
			Title:    "Math Quiz",
			UniqueID: "u1",
			Questions: []models.Question{
				{Prompt: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
			},
		})
		require.NoError(t, err)

		byID, err := st.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Math Quiz", byID.Title)
		require.Len(t, byID.Questions, 1)
		assert.Equal(t, []string{"3", "4"}, byID.Questions[0].Options)

		byUID, err := st.GetByUniqueID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byUID.ID)

		_, err = st.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.GetByUniqueID(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestStore_UpdateMergesAndBumpsVersion(t *testing.T) {
	forEachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()

		created, err := st.Create(ctx, models.Quiz{Title: "Math Quiz", IsPublic: true})
		require.NoError(t, err)

		title := "Harder Math Quiz"
		updated, err := st.Update(ctx, created.ID, models.QuizPatch{Title: &title})
		require.NoError(t, err)

		assert.Equal(t, "Harder Math Quiz", updated.Title)
		assert.Equal(t, 2, updated.Version)
		// Untouched fields survive the merge.
		assert.True(t, updated.IsPublic)
		assert.Equal(t, created.UniqueID, updated.UniqueID)

		// A second patch bumps again.
		questions := []models.Question{{Prompt: "2+2?", Answer: "4"}}
		updated, err = st.Update(ctx, created.ID, models.QuizPatch{Questions: &questions})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Version)
		assert.Len(t, updated.Questions, 1)

		_, err = st.Update(ctx, 99999, models.QuizPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestStore_Delete(t *testing.T) {
	forEachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()

		created, err := st.Create(ctx, models.Quiz{Title: "Math Quiz", UniqueID: "u1"})
		require.NoError(t, err)

		removed, err := st.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = st.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		created, err = st.Create(ctx, models.Quiz{Title: "Math Quiz", UniqueID: "u2"})
		require.NoError(t, err)

		removed, err = st.DeleteByUniqueID(ctx, "u2")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = st.DeleteByUniqueID(ctx, "u2")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestStore_ListOrderingAndVisibility(t *testing.T) {
	forEachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()

		public, err := st.Create(ctx, models.Quiz{Title: "Public", IsPublic: true})
		require.NoError(t, err)
		private, err := st.Create(ctx, models.Quiz{Title: "Private", IsPublic: false})
		require.NoError(t, err)
		second, err := st.Create(ctx, models.Quiz{Title: "Also Public", IsPublic: true})
		require.NoError(t, err)

		all, err := st.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		// Ascending ID order is part of the Store contract.
		assert.Equal(t, []int{public.ID, private.ID, second.ID},
			[]int{all[0].ID, all[1].ID, all[2].ID})

		onlyPublic, err := st.ListPublic(ctx)
		require.NoError(t, err)
		require.Len(t, onlyPublic, 2)
		assert.Equal(t, public.ID, onlyPublic[0].ID)
		assert.Equal(t, second.ID, onlyPublic[1].ID)
	})
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	created, err := st.Create(ctx, models.Quiz{
		Title: "Math Quiz",
		Questions: []models.Question{
			{Prompt: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
		},
	})
	require.NoError(t, err)

	// Mutating the returned quiz must not leak into the store.
	created.Questions[0].Prompt = "tampered"
	created.Questions[0].Options[0] = "tampered"

	stored, err := st.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2+2?", stored.Questions[0].Prompt)
	assert.Equal(t, "3", stored.Questions[0].Options[0])
}
