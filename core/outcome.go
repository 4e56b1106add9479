package core

// OutcomeStatus tags the result of a pipeline run.
type OutcomeStatus int

const (
	// OutcomeSuccess means retrieval produced candidates and ranking ran.
	// The result list may still be empty if every candidate fell below the threshold.
	OutcomeSuccess OutcomeStatus = iota + 1
	// OutcomeEmpty means every retrieval tier came back empty.
	OutcomeEmpty
	// OutcomeFailure means a collaborator failed. Err holds the cause.
	OutcomeFailure
)

// EmptyMessage is reported with an OutcomeEmpty.
const EmptyMessage = "no articles found"

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the single value a pipeline run returns.
type Outcome struct {
	Status     OutcomeStatus
	Results    []RankedResult
	Message    string
	Provenance Provenance
	Err        error
}

// Articles returns the ranked articles without scores.
func (o Outcome) Articles() []Article {
	articles := make([]Article, len(o.Results))
	for i, r := range o.Results {
		articles[i] = r.Article
	}
	return articles
}

// Success builds a successful outcome.
func Success(results []RankedResult, prov Provenance) Outcome {
	if results == nil {
		results = []RankedResult{}
	}
	return Outcome{Status: OutcomeSuccess, Results: results, Provenance: prov}
}

// Empty builds the outcome for exhausted retrieval.
func Empty(prov Provenance) Outcome {
	return Outcome{
		Status:     OutcomeEmpty,
		Results:    []RankedResult{},
		Message:    EmptyMessage,
		Provenance: prov,
	}
}

// Failure builds a failed outcome around cause.
func Failure(cause error, prov Provenance) Outcome {
	if cause == nil {
		cause = ErrCollaboratorUnavailable
	}
	return Outcome{Status: OutcomeFailure, Message: cause.Error(), Provenance: prov, Err: cause}
}
