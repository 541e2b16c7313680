// internal/workers/data-access/fetch-bid/models.go
package fetchbid

import "edital-workers/internal/models"

type Input struct {
	BidID string `json:"bidId"`
}

type Output struct {
	Bid *models.BidDescriptor `json:"bid"`
}
