package reconcile

import (
	"context"
	"testing"

	"quiz-manager/feature/quiz/models"
	"quiz-manager/feature/quiz/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSync_CreatesNewPublicQuiz(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	batch := []models.Quiz{
		{UniqueID: "u1", Title: "Math Quiz", IsPublic: true, Questions: mathQuestions(2)},
	}

	public, err := Sync(ctx, st, zap.NewNop(), batch)
	require.NoError(t, err)
	require.Len(t, public, 1)

	stored, err := st.GetByUniqueID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, "Math Quiz", stored.Title)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestSync_ResyncBumpsVersion(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	logger := zap.NewNop()

	first := []models.Quiz{
		{UniqueID: "u1", Title: "Math Quiz", IsPublic: true, Questions: mathQuestions(2)},
	}
	_, err := Sync(ctx, st, logger, first)
	require.NoError(t, err)

	second := []models.Quiz{
		{UniqueID: "u1", Title: "Harder Math Quiz", IsPublic: true, Questions: mathQuestions(2)},
	}
	_, err = Sync(ctx, st, logger, second)
	require.NoError(t, err)

	stored, err := st.GetByUniqueID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)
	assert.Equal(t, "Harder Math Quiz", stored.Title)
}

func TestSync_PrivacyRemoval(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	logger := zap.NewNop()

	_, err := Sync(ctx, st, logger, []models.Quiz{
		{UniqueID: "u1", Title: "Math Quiz", IsPublic: true},
	})
	require.NoError(t, err)

	// The client made the quiz private; it must disappear from storage.
	public, err := Sync(ctx, st, logger, []models.Quiz{
		{UniqueID: "u1", Title: "Math Quiz", IsPublic: false},
	})
	require.NoError(t, err)
	assert.Empty(t, public)

	_, err = st.GetByUniqueID(ctx, "u1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSync_PublicWithoutUniqueIDIsSkipped(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	public, err := Sync(ctx, st, zap.NewNop(), []models.Quiz{
		{Title: "No Identity", IsPublic: true, Questions: mathQuestions(1)},
	})
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSync_SweepsPrivateRecords(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	// A private quiz slipped in via direct creation.
	_, err := st.Create(ctx, models.Quiz{UniqueID: "p1", Title: "Private", IsPublic: false})
	require.NoError(t, err)
	_, err = st.Create(ctx, models.Quiz{UniqueID: "u1", Title: "Public", IsPublic: true})
	require.NoError(t, err)

	public, err := Sync(ctx, st, zap.NewNop(), nil)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "u1", public[0].UniqueID)

	all, err := st.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSync_CreateKeepsSubmittedVersion(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	_, err := Sync(ctx, st, zap.NewNop(), []models.Quiz{
		{UniqueID: "u1", Title: "Math Quiz", IsPublic: true, Version: 7},
	})
	require.NoError(t, err)

	stored, err := st.GetByUniqueID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Version)
}

func TestSync_MixedBatch(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	logger := zap.NewNop()

	_, err := Sync(ctx, st, logger, []models.Quiz{
		{UniqueID: "keep", Title: "Kept", IsPublic: true},
		{UniqueID: "drop", Title: "Dropped", IsPublic: true},
	})
	require.NoError(t, err)

	public, err := Sync(ctx, st, logger, []models.Quiz{
		{UniqueID: "keep", Title: "Kept v2", IsPublic: true},
		{UniqueID: "drop", Title: "Dropped", IsPublic: false},
		{UniqueID: "new", Title: "Fresh", IsPublic: true},
		{Title: "Anonymous", IsPublic: true},
	})
	require.NoError(t, err)

	uids := make([]string, 0, len(public))
	for _, q := range public {
		uids = append(uids, q.UniqueID)
	}
	assert.ElementsMatch(t, []string{"keep", "new"}, uids)

	kept, err := st.GetByUniqueID(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, 2, kept.Version)
	assert.Equal(t, "Kept v2", kept.Title)
}
