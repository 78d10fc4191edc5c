package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRate_EmptyInput(t *testing.T) {
	p := mustPattern(t, "hydration", "수분|촉촉")
	assert.Zero(t, MatchRate(nil, p))
	assert.Zero(t, MatchRate([]string{}, p))
}

func TestMatchRate_NullsStayInDenominator(t *testing.T) {
	p := mustPattern(t, "hydration", "수분|촉촉")
	// Two matches out of four texts; the empty string counts against.
	texts := []string{"수분감이 좋아요", "", "촉촉해요", "별로예요"}
	assert.InDelta(t, 0.5, MatchRate(texts, p), 1e-9)
}

func TestMatchRate_NoMatches(t *testing.T) {
	p := mustPattern(t, "hydration", "수분")
	assert.Zero(t, MatchRate([]string{"별로", ""}, p))
}

func TestMatchRate_BoundedAndCaseInsensitive(t *testing.T) {
	p := mustPattern(t, "water", "water|aqua")
	texts := []string{"WATER type", "Aqua fresh", "water again"}
	rate := MatchRate(texts, p)
	assert.InDelta(t, 1.0, rate, 1e-9)
	assert.LessOrEqual(t, rate, 1.0)
}

func TestMatchRate_MultipleKeywordsOR(t *testing.T) {
	p := mustPattern(t, "value", `가성비|저렴|1\+1`)
	texts := []string{"1+1 행사", "저렴해서 좋아요", "촉촉"}
	assert.InDelta(t, 2.0/3.0, MatchRate(texts, p), 1e-9)
}

func TestFoldText_CaseFoldAndNFC(t *testing.T) {
	assert.Equal(t, foldText("BLACK Tee"), foldText("black tee"))
	// NFD input folds to the same string as the composed form.
	assert.Equal(t, foldText("간"), foldText("간"))
}

func TestContainsAnyFold(t *testing.T) {
	folded := foldText("무지 반팔 BLACK L")
	assert.True(t, containsAnyFold(folded, []string{"티셔츠", "반팔"}))
	assert.True(t, containsAnyFold(folded, []string{"black"}))
	assert.False(t, containsAnyFold(folded, []string{"후드", "맨투맨"}))
	assert.False(t, containsAnyFold("", []string{"후드"}))
}
