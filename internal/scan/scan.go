package scan

// Rule names the classifier that selected a candidate.
type Rule string

const (
	RuleEmpty           Rule = "empty"
	RulePattern         Rule = "pattern"
	RuleNoMovieFile     Rule = "no-movie-file"
	RuleHasSubtitleRoot Rule = "has-subtitle-root"
	RuleSubtitleFile    Rule = "subtitle-file"
	RuleNonDuplicate    Rule = "non-duplicate"
)

// Candidate is a path selected by a classifier as eligible for mutation in
// the current pass. Candidates are ephemeral: recomputed on every scan and
// discarded when the invocation ends.
type Candidate struct {
	Path    string
	Rule    Rule
	Pattern string // matching pattern source, for RulePattern
	Size    int64  // file size in bytes, for RulePattern (0 on lookup failure)
}
