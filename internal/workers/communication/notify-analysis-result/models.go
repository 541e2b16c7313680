// internal/workers/communication/notify-analysis-result/models.go
package notifyanalysisresult

import (
	"time"

	"edital-workers/internal/models"
)

type Recipient struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Input struct {
	AnalysisID string                `json:"analysisId"`
	BidID      string                `json:"bidId"`
	Bid        *models.BidDescriptor `json:"bid,omitempty"`
	Scores     models.ScoreSet       `json:"viabilityScores"`
	Decision   *models.Decision      `json:"decision"`
	Narrative  string                `json:"narrative,omitempty"`
	Recipients []Recipient           `json:"recipients"`
}

type Delivery struct {
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	MessageID string    `json:"messageId,omitempty"`
	SentAt    time.Time `json:"sentAt"`
}

type Output struct {
	NotificationID string     `json:"notificationId"`
	Deliveries     []Delivery `json:"deliveries"`
	Skipped        []string   `json:"skippedRecipients,omitempty"`
}
