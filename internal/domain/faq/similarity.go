package faq

import "github.com/pmezard/go-difflib/difflib"

// scorer rates candidate questions against one fixed input using the
// SequenceMatcher ratio (2*M/T over matching blocks). The input is kept as
// the second sequence so its junk/popularity index is built only once.
type scorer struct {
	matcher *difflib.SequenceMatcher
	cutoff  float64
}

func newScorer(input string, cutoff float64) *scorer {
	return &scorer{
		matcher: difflib.NewMatcher(nil, splitRunes(input)),
		cutoff:  cutoff,
	}
}

// score returns the ratio of candidate against the input and whether it clears the cutoff.
// The cheap upper bounds are checked first, as get_close_matches does.
func (s *scorer) score(candidate string) (float64, bool) {
	s.matcher.SetSeq1(splitRunes(candidate))
	if s.matcher.RealQuickRatio() < s.cutoff {
		return 0, false
	}
	if s.matcher.QuickRatio() < s.cutoff {
		return 0, false
	}
	ratio := s.matcher.Ratio()
	return ratio, ratio >= s.cutoff
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
