package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"quiz-manager/feature/quiz/models"
)

// fieldSep joins normalized parts of a fingerprint. It only needs to be a
// string unlikely to appear in quiz content.
const fieldSep = "|"

// normalize lowercases and trims a content string. All fingerprint and
// fuzzy-match comparisons go through this.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Fingerprint computes the order-independent content fingerprint of a quiz.
//
// Two quizzes with the same normalized title, the same question count, and
// the same set of (prompt, sorted options, answer) tuples produce an equal
// fingerprint regardless of question or option ordering. Used only for
// quizzes without a uniqueId.
func Fingerprint(q models.Quiz) string {
	parts := make([]string, 0, len(q.Questions))
	for _, question := range q.Questions {
		options := make([]string, 0, len(question.Options))
		for _, opt := range question.Options {
			options = append(options, normalize(opt))
		}
		sort.Strings(options)

		parts = append(parts, strings.Join([]string{
			normalize(question.Prompt),
			strings.Join(options, fieldSep),
			normalize(question.Answer),
		}, fieldSep))
	}

	// Sorting by the full serialized tuple sorts by normalized prompt
	// first, which removes question-ordering sensitivity.
	sort.Strings(parts)

	return fmt.Sprintf("%s%s%d%s%s",
		normalize(q.Title), fieldSep, len(q.Questions), fieldSep, strings.Join(parts, fieldSep))
}
