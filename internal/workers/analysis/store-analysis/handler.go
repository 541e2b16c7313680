// internal/workers/analysis/store-analysis/handler.go
package storeanalysis

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	commonerrors "edital-workers/internal/common/errors"
	"edital-workers/internal/common/logger"
	"edital-workers/internal/common/metrics"
	"edital-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
)

const (
	TaskType = "store-analysis"
)

type Handler struct {
	config *Config
	db     *sql.DB
	es     *elasticsearch.Client
	logger logger.Logger
	errors *commonerrors.ErrorHandler
	now    func() time.Time
	newID  func() string
}

func NewHandler(config *Config, db *sql.DB, es *elasticsearch.Client, log logger.Logger) *Handler {
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		db:     db,
		es:     es,
		logger: taskLog,
		errors: commonerrors.NewErrorHandler(taskLog),
		now:    time.Now,
		newID:  uuid.NewString,
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

	if strings.TrimSpace(input.BidID) == "" || strings.TrimSpace(input.CompanyID) == "" {
		h.failJob(client, job, "PARSE_ERROR", "bidId and companyId are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	record := models.AnalysisRecord{
		AnalysisID:     input.AnalysisID,
		BidID:          input.BidID,
		CompanyID:      input.CompanyID,
		Scores:         input.Scores,
		Decision:       input.Decision,
		Recommendation: input.Recommendation,
		Narrative:      input.Narrative,
		CreatedAt:      h.now().UTC(),
	}
	if record.AnalysisID == "" {
		record.AnalysisID = h.newID()
	}

	if err := h.upsertRecord(ctx, &record); err != nil {
		return nil, err
	}
	if err := h.indexRecord(ctx, &record); err != nil {
		return nil, err
	}

	h.logger.Info("analysis stored", map[string]interface{}{
		"analysisId":   record.AnalysisID,
		"bidId":        record.BidID,
		"companyId":    record.CompanyID,
		"overallScore": record.OverallScore(),
	})

	return &Output{
		AnalysisID:   record.AnalysisID,
		OverallScore: record.OverallScore(),
		StoredAt:     record.CreatedAt,
	}, nil
}

// upsertRecord writes the record keyed by (bid, company) so re-running an
// analysis replaces the previous result instead of duplicating it.
func (h *Handler) upsertRecord(ctx context.Context, record *models.AnalysisRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return commonerrors.NewAnalysisStoreFailedError(err)
	}

	decision := ""
	if record.Decision != nil {
		decision = string(record.Decision.Outcome)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO bid_analyses (id, bid_id, company_id, overall_score, decision, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (bid_id, company_id) DO UPDATE SET
			id = EXCLUDED.id,
			overall_score = EXCLUDED.overall_score,
			decision = EXCLUDED.decision,
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at`,
		record.AnalysisID, record.BidID, record.CompanyID,
		record.OverallScore(), decision, payload, record.CreatedAt,
	)
	if err != nil {
		return commonerrors.NewAnalysisStoreFailedError(err)
	}
	return nil
}

func (h *Handler) indexRecord(ctx context.Context, record *models.AnalysisRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return commonerrors.NewAnalysisIndexFailedError(err)
	}

	res, err := h.es.Index(
		h.config.AnalysisIndex,
		bytes.NewReader(doc),
		h.es.Index.WithDocumentID(record.AnalysisID),
		h.es.Index.WithContext(ctx),
	)
	if err != nil {
		return commonerrors.NewAnalysisIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return commonerrors.NewAnalysisIndexFailedError(fmt.Errorf("index response: %s", res.Status()))
	}
	return nil
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
