package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/glowlab/retention-cli/internal/model"
)

// normalize applies NFC normalization so Korean text from decomposed
// sources (macOS filenames, some crawlers) matches composed patterns.
func normalize(s string) string {
	return norm.NFC.String(s)
}

// foldText normalizes and case-folds text for plain-substring matching.
// A fresh Caser per call: cases.Caser is stateful and not safe to share
// across goroutines.
func foldText(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// MatchRate returns the fraction of texts containing at least one match
// for the pattern. Empty strings (the null-coercion policy) never match
// but stay in the denominator. Returns 0 for an empty input.
func MatchRate(texts []string, p model.AttributePattern) float64 {
	if len(texts) == 0 {
		return 0
	}
	matched := 0
	for _, t := range texts {
		if p.Match(normalize(t)) {
			matched++
		}
	}
	return float64(matched) / float64(len(texts))
}

// containsAnyFold reports whether the already-folded text contains any
// of the keywords (folded before comparison).
func containsAnyFold(folded string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(folded, foldText(k)) {
			return true
		}
	}
	return false
}
