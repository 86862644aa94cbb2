package faq

// Fixed replies returned by the matcher when no catalog answer applies.
const (
	MessageUnavailable   = "Sorry, FAQ data is not available at the moment. Please try again later."
	MessageNotFound      = "Sorry, I couldn't find an answer to your question. Please check your question and try again."
	MessageInternalError = "Sorry, I encountered an error while processing your question. Please try again."
)

// Cutoff is the minimum similarity score a question needs to be considered a match.
const Cutoff = 0.5

// Entry is one stored question/answer pair.
type Entry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Outcome classifies how a lookup was resolved.
type Outcome string

const (
	// OutcomeMatched means a catalog entry scored at or above the cutoff.
	OutcomeMatched Outcome = "matched"
	// OutcomeNotFound means the catalog had entries but none was close enough.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeUnavailable means the catalog was empty or could not be read.
	OutcomeUnavailable Outcome = "unavailable"
	// OutcomeError means the lookup faulted and was recovered.
	OutcomeError Outcome = "error"
)

// Result is the detailed outcome of a single lookup.
type Result struct {
	Answer          string  `json:"answer"`
	Outcome         Outcome `json:"outcome"`
	MatchedQuestion string  `json:"matchedQuestion,omitempty"`
	Score           float64 `json:"score,omitempty"`
}

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query    string `json:"query"`
	Count    int64  `json:"count"`
	Matched  int64  `json:"matched"`
	NotFound int64  `json:"notFound"`
}
