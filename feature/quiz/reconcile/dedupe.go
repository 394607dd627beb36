package reconcile

import (
	"context"
	"fmt"

	"quiz-manager/feature/quiz/models"
	"quiz-manager/feature/quiz/store"
)

// fuzzyThresholdRatio is the fraction of the smaller question count that
// must match for two same-title quizzes to be treated as duplicates.
const fuzzyThresholdRatio = 0.8

// maxQuestionCountGap is the largest question-count difference two quizzes
// may have and still be compared by the fuzzy pass.
const maxQuestionCountGap = 1

// BuildPlan computes the removal plan for a snapshot of the stored
// collection. It runs the three deduplication passes in order; each pass
// only examines quizzes still kept by the prior passes. BuildPlan performs
// no mutations.
//
// Quizzes must be ordered by ascending ID (the Store contract) so that
// tie-break fallbacks are deterministic.
func BuildPlan(quizzes []models.Quiz) *Plan {
	plan := &Plan{
		Actions: []Action{},
		Summary: Summary{TotalQuizzes: len(quizzes)},
	}
	removed := make(map[int]bool, len(quizzes))

	planUniqueIDPass(quizzes, removed, plan)
	planFingerprintPass(quizzes, removed, plan)
	planFuzzyPass(quizzes, removed, plan)

	return plan
}

// Deduplicate builds a removal plan from the full stored collection and
// applies it, deleting every planned loser. It returns the number of
// quizzes removed.
//
// The read-plan-delete sequence is not atomic; callers must serialize
// Deduplicate against other writers (see feature/quiz.Service).
func Deduplicate(ctx context.Context, st store.Store) (int, error) {
	quizzes, err := st.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load quizzes for cleanup: %w", err)
	}

	plan := BuildPlan(quizzes)
	return ApplyPlan(ctx, st, plan)
}

// ApplyPlan deletes every quiz the plan marked for removal and returns the
// count actually removed.
func ApplyPlan(ctx context.Context, st store.Store, plan *Plan) (int, error) {
	removed := 0
	for _, action := range plan.Actions {
		ok, err := st.Delete(ctx, action.QuizID)
		if err != nil {
			return removed, fmt.Errorf("failed to remove duplicate quiz %d: %w", action.QuizID, err)
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// planUniqueIDPass groups kept quizzes by uniqueId and plans removal of
// every group member except the tie-break winner. Quizzes without a
// uniqueId are deferred to the fingerprint pass.
func planUniqueIDPass(quizzes []models.Quiz, removed map[int]bool, plan *Plan) {
	groups := groupBy(quizzes, removed, func(q models.Quiz) string {
		return q.UniqueID
	})
	for _, group := range groups {
		winner, losers := pickWinner(group)
		for _, loser := range losers {
			removed[loser.ID] = true
			plan.Summary.UniqueIDLosers++
			plan.Actions = append(plan.Actions, Action{
				QuizID:   loser.ID,
				UniqueID: loser.UniqueID,
				Title:    loser.Title,
				Reason:   ReasonDuplicateUniqueID,
				KeptID:   winner.ID,
			})
		}
	}
}

// planFingerprintPass groups kept quizzes WITHOUT a uniqueId by content
// fingerprint and plans removal of everything but the winner per group.
func planFingerprintPass(quizzes []models.Quiz, removed map[int]bool, plan *Plan) {
	groups := groupBy(quizzes, removed, func(q models.Quiz) string {
		if q.UniqueID != "" {
			return ""
		}
		return Fingerprint(q)
	})
	for _, group := range groups {
		winner, losers := pickWinner(group)
		for _, loser := range losers {
			removed[loser.ID] = true
			plan.Summary.FingerprintLosers++
			plan.Actions = append(plan.Actions, Action{
				QuizID: loser.ID,
				Title:  loser.Title,
				Reason: ReasonDuplicateFingerprint,
				KeptID: winner.ID,
			})
		}
	}
}

// planFuzzyPass compares kept quizzes pairwise within normalized-title
// groups and plans removal of the tie-break loser of each matching pair.
func planFuzzyPass(quizzes []models.Quiz, removed map[int]bool, plan *Plan) {
	groups := groupBy(quizzes, removed, func(q models.Quiz) string {
		return normalize(q.Title)
	})
	for _, group := range groups {
		for i := 0; i < len(group); i++ {
			if removed[group[i].ID] {
				continue
			}
			for j := i + 1; j < len(group); j++ {
				if removed[group[j].ID] {
					continue
				}
				if !fuzzyDuplicate(group[i], group[j]) {
					continue
				}

				loser, winner := group[i], group[j]
				if KeepFirst(group[i], group[j]) {
					loser, winner = group[j], group[i]
				}
				removed[loser.ID] = true
				plan.Summary.FuzzyLosers++
				plan.Actions = append(plan.Actions, Action{
					QuizID:   loser.ID,
					UniqueID: loser.UniqueID,
					Title:    loser.Title,
					Reason:   ReasonFuzzyMatch,
					KeptID:   winner.ID,
				})
				if removed[group[i].ID] {
					// The left-hand quiz lost; stop comparing it further.
					break
				}
			}
		}
	}
}

// fuzzyDuplicate reports whether two same-title quizzes are near-identical
// by question content.
func fuzzyDuplicate(a, b models.Quiz) bool {
	// Distinct uniqueIds are verifiably different quizzes.
	if a.UniqueID != "" && b.UniqueID != "" && a.UniqueID != b.UniqueID {
		return false
	}

	countA, countB := len(a.Questions), len(b.Questions)
	if abs(countA-countB) > maxQuestionCountGap {
		return false
	}

	// Quizzes with no questions carry no comparable content; leave them to
	// the fingerprint pass.
	minCount := min(countA, countB)
	if minCount == 0 {
		return false
	}

	matches := countMatchingQuestions(a.Questions, b.Questions)
	threshold := fuzzyThresholdRatio * float64(minCount)
	return float64(matches) >= threshold
}

// countMatchingQuestions counts questions of a that match a question of b
// by normalized prompt or normalized answer. Each question of b matches at
// most once; the first match wins.
func countMatchingQuestions(a, b []models.Question) int {
	used := make([]bool, len(b))
	matches := 0
	for _, qa := range a {
		prompt, answer := normalize(qa.Prompt), normalize(qa.Answer)
		for i, qb := range b {
			if used[i] {
				continue
			}
			if normalize(qb.Prompt) == prompt || normalize(qb.Answer) == answer {
				used[i] = true
				matches++
				break
			}
		}
	}
	return matches
}

// groupBy buckets kept quizzes by key, preserving input (ID) order within
// each bucket. An empty key excludes the quiz from the pass. Only buckets
// with more than one member are returned.
func groupBy(quizzes []models.Quiz, removed map[int]bool, key func(models.Quiz) string) [][]models.Quiz {
	buckets := make(map[string][]models.Quiz)
	var order []string
	for _, q := range quizzes {
		if removed[q.ID] {
			continue
		}
		k := key(q)
		if k == "" {
			continue
		}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], q)
	}

	var groups [][]models.Quiz
	for _, k := range order {
		if len(buckets[k]) > 1 {
			groups = append(groups, buckets[k])
		}
	}
	return groups
}

// pickWinner folds the tie-break over a group (ascending ID order) and
// returns the single winner plus every loser.
func pickWinner(group []models.Quiz) (models.Quiz, []models.Quiz) {
	winner := group[0]
	losers := make([]models.Quiz, 0, len(group)-1)
	for _, candidate := range group[1:] {
		if KeepFirst(candidate, winner) {
			losers = append(losers, winner)
			winner = candidate
		} else {
			losers = append(losers, candidate)
		}
	}
	return winner, losers
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
