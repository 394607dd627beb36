// Package quiz implements the quiz management feature.
//
// It exposes CRUD endpoints over stored quizzes plus the two reconciliation
// operations: syncing client-submitted batches and deduplicating the stored
// collection (see feature/quiz/reconcile).
//
// # Components
//
//   - Service: Orchestrates the store, the reconciliation engine, and image
//     garbage collection. Serializes sync/cleanup behind a mutex.
//   - Handler: Exposes the HTTP endpoints and validates request shapes.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET    /quizzes             : List public quizzes.
//   - POST   /quizzes             : Create a quiz.
//   - GET    /quizzes/:id         : Get by storage ID.
//   - PUT    /quizzes/:id         : Partial update (bumps version).
//   - DELETE /quizzes/:id         : Delete by storage ID.
//   - GET    /quizzes/uid/:uid    : Get by uniqueId.
//   - DELETE /quizzes/uid/:uid    : Delete by uniqueId.
//   - POST   /quizzes/cleanup     : Deduplicate; reports count removed.
//   - POST   /quizzes/sync        : Sync a batch, then deduplicate.
//   - POST   /images              : Upload a question image.
//   - GET    /images/:name        : Stream a question image.
package quiz
