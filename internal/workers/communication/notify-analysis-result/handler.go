// internal/workers/communication/notify-analysis-result/handler.go
package notifyanalysisresult

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	commonerrors "edital-workers/internal/common/errors"
	"edital-workers/internal/common/logger"
	"edital-workers/internal/common/metrics"
	"edital-workers/internal/common/validation"
	"edital-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-analysis-result"
)

// EmailSender and SMSSender match the common AWS wrappers so tests can stub
// the delivery calls.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config *Config
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
	errors *commonerrors.ErrorHandler
	now    func() time.Time
	newID  func() string
}

func NewHandler(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		email:  email,
		sms:    sms,
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
	if input.Decision == nil {
		return nil, fmt.Errorf("decision is required")
	}
	if len(input.Recipients) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	output := &Output{NotificationID: h.newID()}
	subject := h.buildSubject(input)
	body := h.buildBody(input)
	sms := h.buildSMS(input)

	for _, recipient := range input.Recipients {
		if recipient.Email == "" && recipient.Phone == "" {
			output.Skipped = append(output.Skipped, recipient.Name)
			continue
		}

		if recipient.Email != "" {
			if !validation.ValidateEmail(recipient.Email) {
				h.logger.Warn("skipping invalid email address", map[string]interface{}{
					"recipient": recipient.Name,
				})
				output.Skipped = append(output.Skipped, recipient.Email)
			} else {
				messageID, err := h.sendEmail(ctx, recipient.Email, subject, body)
				if err != nil {
					return nil, commonerrors.NewNotificationSendFailedError("email", err)
				}
				output.Deliveries = append(output.Deliveries, Delivery{
					Channel:   "email",
					Recipient: recipient.Email,
					MessageID: messageID,
					SentAt:    h.now().UTC(),
				})
			}
		}

		if recipient.Phone != "" {
			if !validation.ValidatePhone(recipient.Phone) {
				h.logger.Warn("skipping invalid phone number", map[string]interface{}{
					"recipient": recipient.Name,
				})
				output.Skipped = append(output.Skipped, recipient.Phone)
			} else {
				messageID, err := h.sendSMS(ctx, recipient.Phone, sms)
				if err != nil {
					return nil, commonerrors.NewNotificationSendFailedError("sms", err)
				}
				output.Deliveries = append(output.Deliveries, Delivery{
					Channel:   "sms",
					Recipient: recipient.Phone,
					MessageID: messageID,
					SentAt:    h.now().UTC(),
				})
			}
		}
	}

	h.logger.Info("analysis notifications sent", map[string]interface{}{
		"notificationId": output.NotificationID,
		"deliveries":     len(output.Deliveries),
		"skipped":        len(output.Skipped),
	})

	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) (string, error) {
	result, err := h.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(h.config.SenderEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(result.MessageId), nil
}

func (h *Handler) sendSMS(ctx context.Context, phone, message string) (string, error) {
	result, err := h.sms.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(phone),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(result.MessageId), nil
}

func (h *Handler) buildSubject(input *Input) string {
	label := h.bidLabel(input)
	switch input.Decision.Outcome {
	case models.OutcomeParticipate:
		return fmt.Sprintf("Análise concluída: participar do edital %s", label)
	case models.OutcomeAnalyzeFurther:
		return fmt.Sprintf("Análise concluída: edital %s requer revisão", label)
	default:
		return fmt.Sprintf("Análise concluída: declinar do edital %s", label)
	}
}

func (h *Handler) buildBody(input *Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A análise de viabilidade do edital %s foi concluída.\n\n", h.bidLabel(input))
	fmt.Fprintf(&b, "Pontuação final: %d/100\n", input.Scores.Final)
	fmt.Fprintf(&b, "Decisão: %s (confiança %d%%)\n", input.Decision.Outcome, input.Decision.Confidence)

	if len(input.Decision.DecisiveFactors) > 0 {
		b.WriteString("\nFatores decisivos:\n")
		for _, factor := range input.Decision.DecisiveFactors {
			fmt.Fprintf(&b, "- %s: %d (%s)\n", factor.Name, factor.Score, factor.Polarity)
		}
	}

	if input.Narrative != "" {
		fmt.Fprintf(&b, "\n%s\n", input.Narrative)
	}

	if input.AnalysisID != "" {
		fmt.Fprintf(&b, "\nReferência da análise: %s\n", input.AnalysisID)
	}

	return b.String()
}

// buildSMS keeps the text short, carriers truncate above 160 characters.
func (h *Handler) buildSMS(input *Input) string {
	return fmt.Sprintf("Edital %s: %d/100, decisão %s (%d%%)",
		h.bidLabel(input), input.Scores.Final, input.Decision.Outcome, input.Decision.Confidence)
}

func (h *Handler) bidLabel(input *Input) string {
	if input.Bid != nil && input.Bid.Number != "" {
		return input.Bid.Number
	}
	return input.BidID
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
