// internal/workers/data-access/fetch-bid/handler.go
package fetchbid

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	commonerrors "edital-workers/internal/common/errors"
	"edital-workers/internal/common/logger"
	"edital-workers/internal/common/metrics"
	"edital-workers/internal/common/validation"
	"edital-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "fetch-bid"
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redisClient,
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

	if strings.TrimSpace(input.BidID) == "" {
		h.failJob(client, job, "PARSE_ERROR", "bidId is required")
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
			h.failJob(client, job, string(commonerrors.ErrCodeBidFetchFailed), err.Error())
		}
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	bid, err := h.getBid(ctx, input.BidID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("bid fetched", map[string]interface{}{
		"bidId":    bid.ID,
		"modality": bid.Modality,
		"value":    bid.EstimatedValue,
	})

	return &Output{Bid: bid}, nil
}

// getBid reads through the cache: Redis first, Postgres on miss. The raw
// payload is schema-checked before it reaches the engine, in both paths.
func (h *Handler) getBid(ctx context.Context, bidID string) (*models.BidDescriptor, error) {
	cacheKey := "bid:" + bidID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		metrics.AnalysisCacheHits.WithLabelValues("bid", "hit").Inc()
		bid, err := h.decodeBid([]byte(val))
		if err == nil {
			return bid, nil
		}
		// Stale or corrupt cache entry falls through to the database.
		h.redis.Del(ctx, cacheKey)
	}
	metrics.AnalysisCacheHits.WithLabelValues("bid", "miss").Inc()

	var payload []byte
	row := h.db.QueryRowContext(ctx, `SELECT payload FROM bids WHERE id = $1`, bidID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, commonerrors.NewBidNotFoundError(bidID)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, commonerrors.NewQueryTimeoutError("fetch bid")
		}
		return nil, commonerrors.NewBidFetchFailedError(err)
	}

	bid, err := h.decodeBid(payload)
	if err != nil {
		return nil, err
	}

	h.redis.Set(ctx, cacheKey, payload, h.config.CacheTTL)

	return bid, nil
}

func (h *Handler) decodeBid(payload []byte) (*models.BidDescriptor, error) {
	result, err := validation.ValidateBid(payload)
	if err != nil {
		return nil, commonerrors.NewBidValidationFailedError(err.Error())
	}
	if !result.Valid {
		return nil, commonerrors.NewBidValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var bid models.BidDescriptor
	if err := json.Unmarshal(payload, &bid); err != nil {
		return nil, commonerrors.NewBidValidationFailedError(err.Error())
	}
	return &bid, nil
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
