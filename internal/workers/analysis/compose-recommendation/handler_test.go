// internal/workers/analysis/compose-recommendation/handler_test.go
package composerecommendation

import (
	"context"
	"testing"
	"time"

	"edital-workers/internal/common/logger"
	"edital-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) *Handler {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	h.now = func() time.Time { return testNow }
	return h
}

func participateInput() *Input {
	return &Input{
		Bid: &models.BidDescriptor{
			ID:             "bid-001",
			EstimatedValue: 250_000,
			OpeningDate:    testNow.AddDate(0, 0, 15),
			ExecutionDays:  90,
		},
		Scores: models.ScoreSet{
			Financial: 100, Technical: 95, Documentary: 85,
			Timeline: 90, Risk: 80, Competition: 95, Final: 92,
		},
		Decision: models.Decision{Outcome: models.OutcomeParticipate, Confidence: 77},
	}
}

func TestExecute_ParticipatePath(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), participateInput())

	require.NoError(t, err)
	rec := output.Recommendation
	assert.Equal(t, "price-competitiveness", rec.Strategy)
	assert.Equal(t, "high", rec.Priority)
	assert.Equal(t, 211875.0, rec.Pricing.SuggestedPrice)
	assert.Len(t, rec.Schedule, 5)
	assert.NotEmpty(t, rec.ImmediateActions)
}

func TestExecute_MissingBidFails(t *testing.T) {
	h := newTestHandler(t)
	_, err := h.Execute(context.Background(), &Input{})
	assert.Error(t, err)
}

func TestExecute_Deterministic(t *testing.T) {
	h := newTestHandler(t)
	input := participateInput()

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := h.Execute(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, first.Recommendation, next.Recommendation)
	}
}
