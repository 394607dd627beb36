package quiz

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"quiz-manager/core/storage"
	"quiz-manager/feature/quiz/models"
	"quiz-manager/feature/quiz/reconcile"
	"quiz-manager/feature/quiz/store"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// imagePrefix is the bucket prefix under which question images live.
const imagePrefix = "images/"

// Service orchestrates quiz storage, reconciliation, and image handling.
type Service struct {
	store  store.Store
	client storage.Client // nil disables image handling
	bucket string
	logger *zap.Logger

	// mu serializes Sync and Cleanup. Both read the full collection,
	// compute a plan, and then mutate it; interleaved writers would
	// corrupt the plan. Plain CRUD calls stay unguarded since each store
	// primitive is atomic on its own.
	mu sync.Mutex
}

// NewService creates a new quiz service.
func NewService(st store.Store, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// ListPublic returns all public quizzes.
func (s *Service) ListPublic(ctx context.Context) ([]models.Quiz, error) {
	return s.store.ListPublic(ctx)
}

// GetByID returns a quiz by its storage ID.
func (s *Service) GetByID(ctx context.Context, id int) (*models.Quiz, error) {
	return s.store.GetByID(ctx, id)
}

// GetByUniqueID returns a quiz by its unique identity token.
func (s *Service) GetByUniqueID(ctx context.Context, uid string) (*models.Quiz, error) {
	return s.store.GetByUniqueID(ctx, uid)
}

// Create persists a new quiz, assigning ID, uniqueId, and version defaults.
func (s *Service) Create(ctx context.Context, q models.Quiz) (*models.Quiz, error) {
	return s.store.Create(ctx, q)
}

// Update merges a partial patch over a stored quiz and bumps its version.
func (s *Service) Update(ctx context.Context, id int, patch models.QuizPatch) (*models.Quiz, error) {
	return s.store.Update(ctx, id, patch)
}

// Delete removes a quiz by ID and reports whether anything was removed.
func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	return s.store.Delete(ctx, id)
}

// DeleteByUniqueID removes a quiz by its unique identity token.
func (s *Service) DeleteByUniqueID(ctx context.Context, uid string) (bool, error) {
	return s.store.DeleteByUniqueID(ctx, uid)
}

// Cleanup deduplicates the stored collection and garbage-collects orphaned
// question images. It returns the number of quizzes removed.
func (s *Service) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := reconcile.Deduplicate(ctx, s.store)
	if err != nil {
		return removed, err
	}
	s.collectOrphanImages(ctx)
	return removed, nil
}

// Sync merges a client batch into the store, deduplicates, and returns the
// resulting public set plus the number of duplicates removed.
func (s *Service) Sync(ctx context.Context, batch []models.Quiz) ([]models.Quiz, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := reconcile.Sync(ctx, s.store, s.logger, batch); err != nil {
		return nil, 0, err
	}

	// Sync and cleanup are an explicit two-step protocol; the engine never
	// deduplicates on its own.
	removed, err := reconcile.Deduplicate(ctx, s.store)
	if err != nil {
		return nil, removed, err
	}
	s.collectOrphanImages(ctx)

	public, err := s.store.ListPublic(ctx)
	if err != nil {
		return nil, removed, err
	}
	return public, removed, nil
}

// UploadImage stores a question image and returns its object name.
func (s *Service) UploadImage(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	name := imagePrefix + uuid.NewString()
	_, err := s.client.PutObject(ctx, s.bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return name, nil
}

// GetImage streams a stored question image.
func (s *Service) GetImage(ctx context.Context, name string) (io.ReadCloser, error) {
	if s.client == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}
	if !strings.HasPrefix(name, imagePrefix) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid image name %q", name)
	}
	return s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
}

// collectOrphanImages removes stored images no retained quiz references.
// Garbage collection is advisory: failures are logged, never surfaced.
func (s *Service) collectOrphanImages(ctx context.Context) {
	if s.client == nil {
		return
	}

	all, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("Image GC skipped, listing quizzes failed", zap.Error(err))
		return
	}

	referenced := make(map[string]struct{})
	for _, q := range all {
		for _, question := range q.Questions {
			for _, img := range question.Images {
				referenced[img] = struct{}{}
			}
		}
	}

	var orphans []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    imagePrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			s.logger.Warn("Image GC skipped, listing objects failed", zap.Error(obj.Err))
			return
		}
		if _, ok := referenced[obj.Key]; !ok {
			orphans = append(orphans, obj)
		}
	}
	if len(orphans) == 0 {
		return
	}

	objectsCh := make(chan minio.ObjectInfo, len(orphans))
	for _, obj := range orphans {
		objectsCh <- obj
	}
	close(objectsCh)

	removed := len(orphans)
	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		s.logger.Warn("Failed to remove orphaned image",
			zap.String("object", rerr.ObjectName),
			zap.Error(rerr.Err),
		)
		removed--
	}
	if removed > 0 {
		s.logger.Info("Removed orphaned question images", zap.Int("count", removed))
	}
}
