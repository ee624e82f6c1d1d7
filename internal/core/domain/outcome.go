package domain

// TaskOutcome is the result of one task in one build invocation.
type TaskOutcome string

const (
	// OutcomeSuccess means the task ran and completed.
	OutcomeSuccess TaskOutcome = "SUCCESS"
	// OutcomeFailed means the task ran and failed.
	OutcomeFailed TaskOutcome = "FAILED"
	// OutcomeSkipped means the task was disabled or excluded.
	OutcomeSkipped TaskOutcome = "SKIPPED"
	// OutcomeUpToDate means the inputs and outputs matched the previous run.
	OutcomeUpToDate TaskOutcome = "UP_TO_DATE"
	// OutcomeFromCache means the outputs were restored from the build cache.
	OutcomeFromCache TaskOutcome = "FROM_CACHE"
	// OutcomeNoSource means the task declared inputs but none exist.
	OutcomeNoSource TaskOutcome = "NO_SOURCE"
)

// Valid reports whether o is one of the known outcomes.
func (o TaskOutcome) Valid() bool {
	switch o {
	case OutcomeSuccess, OutcomeFailed, OutcomeSkipped, OutcomeUpToDate, OutcomeFromCache, OutcomeNoSource:
		return true
	default:
		return false
	}
}

// Executed reports whether the task body actually ran.
func (o TaskOutcome) Executed() bool {
	return o == OutcomeSuccess || o == OutcomeFailed
}

// Label is the suffix printed after "> Task :name" in console output.
// Successful tasks print no suffix.
func (o TaskOutcome) Label() string {
	switch o {
	case OutcomeUpToDate:
		return "UP-TO-DATE"
	case OutcomeFromCache:
		return "FROM-CACHE"
	case OutcomeNoSource:
		return "NO-SOURCE"
	case OutcomeSuccess:
		return ""
	default:
		return string(o)
	}
}
