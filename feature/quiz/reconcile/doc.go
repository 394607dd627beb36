// Package reconcile implements the quiz reconciliation engine: syncing
// client-submitted quiz batches into the store and deduplicating the stored
// collection.
//
// The engine is written once against the store.Store abstraction, so the
// same logic serves the in-memory and the database-backed store.
//
// # Deduplication
//
// Deduplication runs three ordered passes over a snapshot of the stored
// collection; each pass only examines quizzes still kept by prior passes:
//
//  1. uniqueId groups: quizzes sharing a uniqueId are collapsed to one.
//  2. Content fingerprint groups: quizzes without a uniqueId sharing an
//     order-independent fingerprint of title + question content collapse.
//  3. Fuzzy similarity: same-title quizzes whose question sets overlap by
//     at least 80% of the smaller count (prompt or answer equality) collapse,
//     unless their uniqueIds prove them distinct.
//
// Every pass retains the tie-break winner (higher version, then later
// creation time, else the incumbent — which is the lowest ID).
//
// The passes first build a removal Plan and only then mutate the store,
// which allows dry-run reporting from the CLI.
//
// # Sync
//
// Sync upserts public quizzes by uniqueId, drops private ones from shared
// storage, and sweeps any remaining private record. The sync/cleanup pair
// is an explicit two-step protocol: Sync never deduplicates on its own.
//
// Neither operation is atomic as a whole; callers must serialize them
// against concurrent writers.
package reconcile
