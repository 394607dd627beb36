package reconcile

import "quiz-manager/feature/quiz/models"

// KeepFirst decides which of two candidate duplicates to retain. It returns
// true when a should be kept (and b removed), false when b should be kept.
//
// The rule is a pure function of the two quizzes:
//  1. If both carry a version and a's is strictly higher, keep a.
//  2. Else if both carry a creation time and a's is strictly later, keep a.
//  3. Else keep b.
//
// A version of 0 and a zero creation time count as absent. Callers feed
// candidates in ascending ID order, so the rule-3 fallback deterministically
// retains the lowest ID when version and creation time tie.
func KeepFirst(a, b models.Quiz) bool {
	if a.Version > 0 && b.Version > 0 && a.Version > b.Version {
		return true
	}
	if !a.CreatedAt.IsZero() && !b.CreatedAt.IsZero() && a.CreatedAt.After(b.CreatedAt) {
		return true
	}
	return false
}
