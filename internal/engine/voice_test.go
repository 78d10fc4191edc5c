package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlab/retention-cli/internal/model"
)

func voiceConfig(c *Config) {
	c.NegativeKWs = []string{"sticky", "irritation"}
}

func TestVoiceGap_ChurnOverIndexedComplaints(t *testing.T) {
	events := []model.Event{
		evContent("churn", "roundlab", "dokdo toner", "way too sticky for me", 1),
		evContent("loyal", "roundlab", "dokdo toner", "love it", 1),
		evContent("loyal", "roundlab", "dokdo toner", "still love it", 10),
		evContent("loyal", "roundlab", "dokdo toner", "repurchase forever", 20),
	}
	eng := newTestEngine(t, events, voiceConfig)

	rows := eng.VoiceGap()
	require.Len(t, rows, 2)

	sticky := rows[0]
	assert.Equal(t, "sticky", sticky.Keyword)
	assert.Equal(t, 100.0, sticky.ChurnRate)
	assert.Equal(t, 0.0, sticky.LoyalRate)
	assert.Equal(t, 100.0, sticky.Gap)

	assert.Equal(t, "irritation", rows[1].Keyword)
	assert.Zero(t, rows[1].Gap)
}

func TestVoiceGap_CaseFoldedMatching(t *testing.T) {
	events := []model.Event{
		evContent("churn", "roundlab", "dokdo toner", "STICKY residue", 1),
		evContent("loyal", "roundlab", "dokdo toner", "fine", 1),
		evContent("loyal", "roundlab", "dokdo toner", "fine", 2),
		evContent("loyal", "roundlab", "dokdo toner", "fine", 3),
	}
	eng := newTestEngine(t, events, voiceConfig)

	rows := eng.VoiceGap()
	require.NotEmpty(t, rows)
	assert.Equal(t, 100.0, rows[0].ChurnRate)
}

func TestVoiceGap_TwoTimeBuyersExcluded(t *testing.T) {
	// A two-purchase user is neither churned (==1) nor loyal (>=3), so
	// with nobody else the loyal cohort is empty and there is no result.
	events := []model.Event{
		evContent("churn", "roundlab", "dokdo toner", "sticky", 1),
		evContent("mid", "roundlab", "dokdo toner", "ok", 1),
		evContent("mid", "roundlab", "dokdo toner", "ok", 10),
	}
	eng := newTestEngine(t, events, voiceConfig)

	assert.Nil(t, eng.VoiceGap())
}

func TestVoiceGap_EmptyCohorts(t *testing.T) {
	eng := newTestEngine(t, []model.Event{ev("u", "torriden", "divein serum", 1)}, voiceConfig)
	assert.Nil(t, eng.VoiceGap())
}

func TestVoiceGap_NullContentStaysInDenominator(t *testing.T) {
	events := []model.Event{
		evContent("churn", "roundlab", "dokdo toner", "sticky mess", 1),
		evContent("loyal", "roundlab", "dokdo toner", "sticky but fine", 1),
		ev("loyal", "roundlab", "dokdo toner", 10), // empty review
		ev("loyal", "roundlab", "dokdo toner", 20),
	}
	eng := newTestEngine(t, events, voiceConfig)

	rows := eng.VoiceGap()
	require.NotEmpty(t, rows)
	assert.Equal(t, "sticky", rows[0].Keyword)
	assert.InDelta(t, 100.0/3, rows[0].LoyalRate, 1e-9)
}
