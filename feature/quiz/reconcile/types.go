package reconcile

// Reason explains why a quiz was planned for removal.
type Reason string

const (
	// ReasonDuplicateUniqueID marks a loser of a uniqueId group (pass 1).
	ReasonDuplicateUniqueID Reason = "duplicate_unique_id"
	// ReasonDuplicateFingerprint marks a loser of a content fingerprint
	// group among quizzes without a uniqueId (pass 2).
	ReasonDuplicateFingerprint Reason = "duplicate_fingerprint"
	// ReasonFuzzyMatch marks a loser of the fuzzy similarity pass (pass 3).
	ReasonFuzzyMatch Reason = "fuzzy_match"
)

// Action is one planned removal.
type Action struct {
	// QuizID is the storage ID of the quiz to remove.
	QuizID int `json:"quizId"`
	// UniqueID is carried for reporting; may be empty.
	UniqueID string `json:"uniqueId,omitempty"`
	// Title is carried for reporting.
	Title string `json:"title"`
	// Reason states which pass planned the removal.
	Reason Reason `json:"reason"`
	// KeptID is the storage ID of the quiz retained in its place.
	KeptID int `json:"keptId"`
}

// Plan is the removal plan produced by the deduplication passes.
// Building a plan performs no mutations; see Deduplicate.
type Plan struct {
	// Actions lists every planned removal in pass order.
	Actions []Action `json:"actions"`
	// Summary aggregates per-pass counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a removal plan.
type Summary struct {
	// TotalQuizzes is the number of quizzes examined.
	TotalQuizzes int `json:"totalQuizzes"`
	// UniqueIDLosers counts removals planned by pass 1.
	UniqueIDLosers int `json:"uniqueIdLosers"`
	// FingerprintLosers counts removals planned by pass 2.
	FingerprintLosers int `json:"fingerprintLosers"`
	// FuzzyLosers counts removals planned by pass 3.
	FuzzyLosers int `json:"fuzzyLosers"`
}

// Removals returns the total number of planned removals.
func (p *Plan) Removals() int {
	return len(p.Actions)
}
