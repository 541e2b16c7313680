// internal/workers/analysis/generate-narrative/handler.go
package generatenarrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	commonerrors "edital-workers/internal/common/errors"
	commonhttp "edital-workers/internal/common/http"
	"edital-workers/internal/common/logger"
	"edital-workers/internal/common/metrics"
	"edital-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-narrative"

	sourceGenAI    = "genai"
	sourceTemplate = "template"
)

type Handler struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		// No client-level timeout; the per-job context bounds the call.
		client: commonhttp.NewClient(0),
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		var stdErr *commonerrors.StandardError
		if errors.As(err, &stdErr) {
			h.failJob(client, job, string(stdErr.Code), stdErr.Details)
		} else {
			h.failJob(client, job, string(commonerrors.ErrCodeNarrativeFailed), err.Error())
		}
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute asks the GenAI service for an executive summary and falls back to
// the deterministic template when the service is unreachable or misbehaving.
// The analysis itself never blocks on the LLM.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Bid == nil {
		return nil, commonerrors.NewNarrativeFailedError(fmt.Errorf("bid is required"))
	}

	if h.config.GenAIBaseURL != "" {
		narrative, err := h.generateWithAPI(ctx, input)
		if err == nil && strings.TrimSpace(narrative) != "" {
			return &Output{Narrative: narrative, Source: sourceGenAI}, nil
		}
		h.logger.Warn("GenAI narrative failed, using template", map[string]interface{}{
			"bidId": input.Bid.ID,
			"error": err,
		})
	}

	return &Output{Narrative: h.templateNarrative(input), Source: sourceTemplate}, nil
}

func (h *Handler) generateWithAPI(ctx context.Context, input *Input) (string, error) {
	requestBody, _ := json.Marshal(map[string]interface{}{
		"prompt":      h.buildPrompt(input),
		"max_tokens":  600,
		"temperature": 0.2,
	})

	var lastErr error
	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", h.contextError(ctx)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			h.config.GenAIBaseURL+"/api/ai/generate", bytes.NewReader(requestBody))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		if h.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", h.contextError(ctx)
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		}

		var apiResponse struct {
			Text string `json:"text"`
		}
		err = json.NewDecoder(resp.Body).Decode(&apiResponse)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return apiResponse.Text, nil
	}

	return "", commonerrors.NewNarrativeFailedError(lastErr)
}

func (h *Handler) contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return commonerrors.NewNarrativeTimeoutError()
	}
	return ctx.Err()
}

func (h *Handler) buildPrompt(input *Input) string {
	var parts []string

	parts = append(parts, "You are a public procurement analyst. Write a short executive summary in Portuguese of this bid viability analysis.")
	parts = append(parts, fmt.Sprintf("\nEdital: %s (%s)", input.Bid.ObjectDescription, input.Bid.Number))
	parts = append(parts, fmt.Sprintf("Estimated value: %.2f", input.Bid.EstimatedValue))
	parts = append(parts, fmt.Sprintf("Final score: %d/100, decision: %s, confidence: %d%%",
		input.Scores.Final, input.Decision.Outcome, input.Decision.Confidence))

	scoresJSON, _ := json.Marshal(input.Scores)
	parts = append(parts, fmt.Sprintf("Sub-scores: %s", scoresJSON))

	if input.Recommendation != nil {
		parts = append(parts, fmt.Sprintf("Strategy: %s, projected ROI: %.2f%%",
			input.Recommendation.Strategy, input.Recommendation.ROI.Percent))
	}

	parts = append(parts, "\nInstructions:")
	parts = append(parts, "- Explain the decision in plain business language")
	parts = append(parts, "- Mention the strongest and weakest dimensions")
	parts = append(parts, "- Keep it under 200 words")

	return strings.Join(parts, "\n")
}

// templateNarrative builds the summary from the structured result alone, so
// the same inputs always produce the same text.
func (h *Handler) templateNarrative(input *Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The analysis of edital %s scored %d/100.", input.Bid.ID, input.Scores.Final)

	switch input.Decision.Outcome {
	case models.OutcomeParticipate:
		fmt.Fprintf(&b, " The recommendation is to participate, with %d%% confidence.", input.Decision.Confidence)
	case models.OutcomeAnalyzeFurther:
		fmt.Fprintf(&b, " The result is borderline and deserves a closer manual review (confidence %d%%).", input.Decision.Confidence)
	default:
		fmt.Fprintf(&b, " The recommendation is to decline, with %d%% confidence.", input.Decision.Confidence)
	}

	best, worst := models.Dimensions[0], models.Dimensions[0]
	for _, d := range models.Dimensions {
		if input.Scores.Get(d) > input.Scores.Get(best) {
			best = d
		}
		if input.Scores.Get(d) < input.Scores.Get(worst) {
			worst = d
		}
	}
	fmt.Fprintf(&b, " Strongest dimension: %s (%d). Weakest dimension: %s (%d).",
		best, input.Scores.Get(best), worst, input.Scores.Get(worst))

	if input.Recommendation != nil {
		fmt.Fprintf(&b, " Suggested strategy: %s with a projected ROI of %.2f%%.",
			input.Recommendation.Strategy, input.Recommendation.ROI.Percent)
	}

	return b.String()
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
