package quiz

import (
	"bytes"
	"errors"

	"quiz-manager/core/logger"
	"quiz-manager/feature/quiz/models"
	"quiz-manager/feature/quiz/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for quizzes.
type Handler struct {
	service  *Service
	validate *validator.Validate
	maxBatch int
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, maxBatch int) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		maxBatch: maxBatch,
	}
}

// RegisterRoutes registers the quiz routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/quizzes")
	group.Get("/", h.HandleListPublic)
	group.Post("/", h.HandleCreate)
	group.Post("/sync", h.HandleSync)
	group.Post("/cleanup", h.HandleCleanup)
	// uid routes must precede the :id wildcard
	group.Get("/uid/:uid", h.HandleGetByUniqueID)
	group.Delete("/uid/:uid", h.HandleDeleteByUniqueID)
	group.Get("/:id", h.HandleGetByID)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)

	images := app.Group("/images")
	images.Post("/", h.HandleUploadImage)
	images.Get("/:name", h.HandleGetImage)
}

// HandleListPublic returns all public quizzes.
// @Summary List public quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {array} models.Quiz
// @Router /quizzes [get]
func (h *Handler) HandleListPublic(c *fiber.Ctx) error {
	quizzes, err := h.service.ListPublic(c.Context())
	if err != nil {
		return h.fail(c, "Listing public quizzes failed", err)
	}
	return c.JSON(quizzes)
}

// HandleGetByID returns a single quiz by storage ID.
// @Summary Get quiz by ID
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} map[string]string
// @Router /quizzes/{id} [get]
func (h *Handler) HandleGetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "id must be an integer")
	}

	quiz, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c)
		}
		return h.fail(c, "Quiz lookup failed", err)
	}
	return c.JSON(quiz)
}

// HandleGetByUniqueID returns a single quiz by its unique identity token.
// @Summary Get quiz by uniqueId
// @Tags quizzes
// @Produce json
// @Param uid path string true "Quiz uniqueId"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} map[string]string
// @Router /quizzes/uid/{uid} [get]
func (h *Handler) HandleGetByUniqueID(c *fiber.Ctx) error {
	quiz, err := h.service.GetByUniqueID(c.Context(), c.Params("uid"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c)
		}
		return h.fail(c, "Quiz lookup failed", err)
	}
	return c.JSON(quiz)
}

// HandleCreate persists a new quiz.
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body models.CreateQuizRequest true "Quiz"
// @Success 201 {object} models.Quiz
// @Failure 400 {object} map[string]string
// @Router /quizzes [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed quiz payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.service.Create(c.Context(), req.ToQuiz())
	if err != nil {
		return h.fail(c, "Quiz creation failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdate merges a partial patch over a stored quiz.
// @Summary Update quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param patch body models.QuizPatch true "Fields to update"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} map[string]string
// @Router /quizzes/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "id must be an integer")
	}

	var patch models.QuizPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "malformed patch payload")
	}
	if patch.Title != nil && *patch.Title == "" {
		return badRequest(c, "title cannot be empty")
	}

	updated, err := h.service.Update(c.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c)
		}
		return h.fail(c, "Quiz update failed", err)
	}
	return c.JSON(updated)
}

// HandleDelete removes a quiz by storage ID.
// @Summary Delete quiz
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} map[string]bool
// @Router /quizzes/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "id must be an integer")
	}

	removed, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return h.fail(c, "Quiz deletion failed", err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// HandleDeleteByUniqueID removes a quiz by its unique identity token.
// @Summary Delete quiz by uniqueId
// @Tags quizzes
// @Produce json
// @Param uid path string true "Quiz uniqueId"
// @Success 200 {object} map[string]bool
// @Router /quizzes/uid/{uid} [delete]
func (h *Handler) HandleDeleteByUniqueID(c *fiber.Ctx) error {
	removed, err := h.service.DeleteByUniqueID(c.Context(), c.Params("uid"))
	if err != nil {
		return h.fail(c, "Quiz deletion failed", err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// HandleCleanup deduplicates the stored collection.
// @Summary Deduplicate stored quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {object} models.CleanupResponse
// @Router /quizzes/cleanup [post]
func (h *Handler) HandleCleanup(c *fiber.Ctx) error {
	removed, err := h.service.Cleanup(c.Context())
	if err != nil {
		return h.fail(c, "Cleanup failed", err)
	}
	return c.JSON(models.CleanupResponse{Removed: removed})
}

// HandleSync merges a client batch and deduplicates.
// @Summary Sync a quiz batch
// @Tags quizzes
// @Accept json
// @Produce json
// @Param batch body models.SyncRequest true "Quiz batch"
// @Success 200 {object} models.SyncResponse
// @Failure 400 {object} map[string]string
// @Router /quizzes/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	var req models.SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed sync payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	if h.maxBatch > 0 && len(req.Quizzes) > h.maxBatch {
		return badRequest(c, "sync batch exceeds the configured limit")
	}

	public, removed, err := h.service.Sync(c.Context(), req.Quizzes)
	if err != nil {
		return h.fail(c, "Sync failed", err)
	}
	return c.JSON(models.SyncResponse{Quizzes: public, Removed: removed})
}

// HandleUploadImage stores a question image and returns its object name.
// @Summary Upload question image
// @Tags images
// @Accept octet-stream
// @Produce json
// @Success 201 {object} map[string]string
// @Router /images [post]
func (h *Handler) HandleUploadImage(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badRequest(c, "empty image body")
	}

	contentType := c.Get(fiber.HeaderContentType)
	name, err := h.service.UploadImage(c.Context(), bytes.NewReader(body), int64(len(body)), contentType)
	if err != nil {
		return h.fail(c, "Image upload failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": name})
}

// HandleGetImage streams a stored question image.
// @Summary Get question image
// @Tags images
// @Produce octet-stream
// @Param name path string true "Image object name (without the images/ prefix)"
// @Success 200
// @Router /images/{name} [get]
func (h *Handler) HandleGetImage(c *fiber.Ctx) error {
	reader, err := h.service.GetImage(c.Context(), imagePrefix+c.Params("name"))
	if err != nil {
		return h.fail(c, "Image fetch failed", err)
	}
	return c.SendStream(reader)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "quiz not found"})
}
