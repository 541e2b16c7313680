// internal/workers/analysis/evaluate-bid-decision/handler_test.go
package evaluatebiddecision

import (
	"context"
	"testing"

	"edital-workers/internal/common/logger"
	"edital-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func TestExecute_Outcomes(t *testing.T) {
	tests := []struct {
		name            string
		scores          models.ScoreSet
		expectedOutcome models.Outcome
	}{
		{
			name: "high score participates",
			scores: models.ScoreSet{
				Financial: 100, Technical: 95, Documentary: 85,
				Timeline: 90, Risk: 80, Competition: 95, Final: 92,
			},
			expectedOutcome: models.OutcomeParticipate,
		},
		{
			name: "borderline score asks for further analysis",
			scores: models.ScoreSet{
				Financial: 65, Technical: 65, Documentary: 65,
				Timeline: 65, Risk: 65, Competition: 65, Final: 65,
			},
			expectedOutcome: models.OutcomeAnalyzeFurther,
		},
		{
			name: "low score declines",
			scores: models.ScoreSet{
				Financial: 65, Technical: 55, Documentary: 40,
				Timeline: 15, Risk: 45, Competition: 45, Final: 47,
			},
			expectedOutcome: models.OutcomeDecline,
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := h.Execute(context.Background(), &Input{Scores: tt.scores})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOutcome, output.Decision.Outcome)
			assert.GreaterOrEqual(t, output.Decision.Confidence, 0)
			assert.LessOrEqual(t, output.Decision.Confidence, 100)
			assert.NotEmpty(t, output.Decision.Justification)
		})
	}
}

func TestExecute_DecisiveFactorsSurfaceExtremes(t *testing.T) {
	h := newTestHandler(t)
	output, err := h.Execute(context.Background(), &Input{
		Scores: models.ScoreSet{
			Financial: 90, Technical: 30, Documentary: 60,
			Timeline: 60, Risk: 60, Competition: 60, Final: 62,
		},
	})

	require.NoError(t, err)
	require.Len(t, output.Decision.DecisiveFactors, 2)
	assert.Equal(t, models.DimFinancial, output.Decision.DecisiveFactors[0].Name)
	assert.Equal(t, models.PolarityPositive, output.Decision.DecisiveFactors[0].Polarity)
	assert.Equal(t, models.DimTechnical, output.Decision.DecisiveFactors[1].Name)
	assert.Equal(t, models.PolarityNegative, output.Decision.DecisiveFactors[1].Polarity)
}
