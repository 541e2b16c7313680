// internal/workers/data-access/fetch-company-profile/handler.go
package fetchcompanyprofile

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
	TaskType = "fetch-company-profile"
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

	if strings.TrimSpace(input.CompanyID) == "" {
		h.failJob(client, job, "PARSE_ERROR", "companyId is required")
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
			h.failJob(client, job, string(commonerrors.ErrCodeProfileFetchFailed), err.Error())
		}
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.getProfile(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("company profile fetched", map[string]interface{}{
		"companyId": profile.ID,
		"size":      profile.Size,
	})

	return &Output{Profile: profile}, nil
}

func (h *Handler) getProfile(ctx context.Context, companyID string) (*models.CompanyProfile, error) {
	cacheKey := "profile:" + companyID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		metrics.AnalysisCacheHits.WithLabelValues("profile", "hit").Inc()
		profile, err := h.decodeProfile([]byte(val))
		if err == nil {
			return profile, nil
		}
		h.redis.Del(ctx, cacheKey)
	}
	metrics.AnalysisCacheHits.WithLabelValues("profile", "miss").Inc()

	var payload []byte
	row := h.db.QueryRowContext(ctx, `SELECT payload FROM company_profiles WHERE id = $1`, companyID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, commonerrors.NewProfileNotFoundError(companyID)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, commonerrors.NewQueryTimeoutError("fetch company profile")
		}
		return nil, commonerrors.NewProfileFetchFailedError(err)
	}

	profile, err := h.decodeProfile(payload)
	if err != nil {
		return nil, err
	}

	h.redis.Set(ctx, cacheKey, payload, h.config.CacheTTL)

	return profile, nil
}

func (h *Handler) decodeProfile(payload []byte) (*models.CompanyProfile, error) {
	result, err := validation.ValidateProfile(payload)
	if err != nil {
		return nil, commonerrors.NewProfileValidationFailedError(err.Error())
	}
	if !result.Valid {
		return nil, commonerrors.NewProfileValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var profile models.CompanyProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, commonerrors.NewProfileValidationFailedError(err.Error())
	}
	return &profile, nil
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
