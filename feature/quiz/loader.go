package quiz

import (
	"quiz-manager/core/storage"
	"quiz-manager/feature/quiz/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the quiz feature. client may be nil when no image
// storage is configured.
func NewFeature(st store.Store, client storage.Client, bucket string, logger *zap.Logger, maxBatch int) *Feature {
	svc := NewService(st, client, bucket, logger)
	h := NewHandler(svc, maxBatch)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "quiz"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
