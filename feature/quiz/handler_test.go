package quiz_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"quiz-manager/feature/quiz"
	"quiz-manager/feature/quiz/models"
	"quiz-manager/feature/quiz/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, maxBatch int) (*fiber.App, store.Store) {
	t.Helper()

	st := store.NewMemory()
	svc := quiz.NewService(st, nil, "", zap.NewNop())
	app := fiber.New()
	quiz.NewHandler(svc, maxBatch).RegisterRoutes(app)
	return app, st
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestHandler_CreateAndGet(t *testing.T) {
	app, _ := newTestApp(t, 0)

	status, raw := doJSON(t, app, "POST", "/quizzes/", models.CreateQuizRequest{
		Title:    "Math Quiz",
		IsPublic: true,
		Questions: []models.Question{
			{Prompt: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
		},
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var created models.Quiz
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.UniqueID)
	assert.Equal(t, 1, created.Version)

	status, raw = doJSON(t, app, "GET", fmt.Sprintf("/quizzes/%d", created.ID), nil)
	require.Equal(t, fiber.StatusOK, status)
	var fetched models.Quiz
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Math Quiz", fetched.Title)

	status, raw = doJSON(t, app, "GET", "/quizzes/uid/"+created.UniqueID, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestHandler_CreateValidation(t *testing.T) {
	app, _ := newTestApp(t, 0)

	// Missing title fails validation.
	status, _ := doJSON(t, app, "POST", "/quizzes/", models.CreateQuizRequest{
		Questions: []models.Question{{Prompt: "2+2?", Answer: "4"}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Malformed JSON.
	req := httptest.NewRequest("POST", "/quizzes/", bytes.NewReader([]byte("not json")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandler_GetMissingQuiz(t *testing.T) {
	app, _ := newTestApp(t, 0)

	status, _ := doJSON(t, app, "GET", "/quizzes/42", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "GET", "/quizzes/uid/no-such-quiz", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "GET", "/quizzes/not-a-number", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	app, st := newTestApp(t, 0)

	created, err := st.Create(context.Background(), models.Quiz{Title: "Old", IsPublic: true})
	require.NoError(t, err)

	newTitle := "New Title"
	status, raw := doJSON(t, app, "PUT", fmt.Sprintf("/quizzes/%d", created.ID), models.QuizPatch{
		Title: &newTitle,
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))
	var updated models.Quiz
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, 2, updated.Version)

	empty := ""
	status, _ = doJSON(t, app, "PUT", fmt.Sprintf("/quizzes/%d", created.ID), models.QuizPatch{
		Title: &empty,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, raw = doJSON(t, app, "DELETE", fmt.Sprintf("/quizzes/%d", created.ID), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"removed": true}`, string(raw))

	status, raw = doJSON(t, app, "DELETE", fmt.Sprintf("/quizzes/%d", created.ID), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"removed": false}`, string(raw))
}

func TestHandler_SyncFlow(t *testing.T) {
	app, _ := newTestApp(t, 0)

	status, raw := doJSON(t, app, "POST", "/quizzes/sync", models.SyncRequest{
		Quizzes: []models.Quiz{
			{UniqueID: "u1", Title: "Math Quiz", IsPublic: true,
				Questions: []models.Question{{Prompt: "2+2?", Answer: "4"}}},
			{Title: "No Identity", IsPublic: true}, // skipped: public without uniqueId
		},
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var out models.SyncResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Zero(t, out.Removed)
	require.Len(t, out.Quizzes, 1)
	assert.Equal(t, "u1", out.Quizzes[0].UniqueID)

	// Re-syncing the same quiz updates in place rather than duplicating.
	status, raw = doJSON(t, app, "POST", "/quizzes/sync", models.SyncRequest{
		Quizzes: []models.Quiz{
			{UniqueID: "u1", Title: "Math Quiz v2", IsPublic: true,
				Questions: []models.Question{{Prompt: "2+2?", Answer: "4"}}},
		},
	})
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Quizzes, 1)
	assert.Equal(t, "Math Quiz v2", out.Quizzes[0].Title)
	assert.Equal(t, 2, out.Quizzes[0].Version)
}

func TestHandler_SyncBatchLimit(t *testing.T) {
	app, _ := newTestApp(t, 2)

	batch := models.SyncRequest{Quizzes: []models.Quiz{
		{UniqueID: "a", Title: "A", IsPublic: true},
		{UniqueID: "b", Title: "B", IsPublic: true},
		{UniqueID: "c", Title: "C", IsPublic: true},
	}}
	status, _ := doJSON(t, app, "POST", "/quizzes/sync", batch)
	assert.Equal(t, fiber.StatusBadRequest, status)

	batch.Quizzes = batch.Quizzes[:2]
	status, _ = doJSON(t, app, "POST", "/quizzes/sync", batch)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestHandler_Cleanup(t *testing.T) {
	app, st := newTestApp(t, 0)

	for _, v := range []int{1, 2} {
		_, err := st.Create(context.Background(), models.Quiz{
			UniqueID: "dup", Title: "Math Quiz", IsPublic: true, Version: v,
		})
		require.NoError(t, err)
	}

	status, raw := doJSON(t, app, "POST", "/quizzes/cleanup", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"removed": 1}`, string(raw))

	status, raw = doJSON(t, app, "GET", "/quizzes/", nil)
	require.Equal(t, fiber.StatusOK, status)
	var kept []models.Quiz
	require.NoError(t, json.Unmarshal(raw, &kept))
	require.Len(t, kept, 1)
	assert.Equal(t, 2, kept[0].Version)
}

func TestHandler_UploadImageWithoutStorage(t *testing.T) {
	app, _ := newTestApp(t, 0)

	req := httptest.NewRequest("POST", "/images/", bytes.NewReader([]byte{0x89, 0x50, 0x4e, 0x47}))
	req.Header.Set(fiber.HeaderContentType, "image/png")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	req = httptest.NewRequest("POST", "/images/", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
