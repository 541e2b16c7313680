// internal/workers/analysis/store-analysis/handler_test.go
package storeanalysis

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	commonerrors "edital-workers/internal/common/errors"
	"edital-workers/internal/common/logger"
	"edital-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type stubTransport struct {
	status int
	body   string
}

func (s *stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
	}, nil
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func setupStubES(t *testing.T, status int) *elasticsearch.Client {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: &stubTransport{status: status, body: `{}`},
	})
	require.NoError(t, err)
	return es
}

func newTestHandler(t *testing.T, db *sql.DB, es *elasticsearch.Client) *Handler {
	h := NewHandler(LoadConfig(), db, es, logger.NewTestLogger(t))
	h.now = func() time.Time { return testNow }
	h.newID = func() string { return "analysis-fixed-id" }
	return h
}

func storedInput() *Input {
	return &Input{
		BidID:     "bid-001",
		CompanyID: "company-01",
		Scores: models.ScoreSet{
			Financial: 100, Technical: 95, Documentary: 85,
			Timeline: 90, Risk: 80, Competition: 95, Final: 92,
		},
		Decision: &models.Decision{Outcome: models.OutcomeParticipate, Confidence: 77},
	}
}

func TestExecute_StoresAndIndexes(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	es := setupStubES(t, http.StatusCreated)

	mock.ExpectExec("INSERT INTO bid_analyses").
		WithArgs("analysis-fixed-id", "bid-001", "company-01", 92, "participate", sqlmock.AnyArg(), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := newTestHandler(t, db, es)
	output, err := h.Execute(context.Background(), storedInput())

	require.NoError(t, err)
	assert.Equal(t, "analysis-fixed-id", output.AnalysisID)
	assert.Equal(t, 92, output.OverallScore)
	assert.Equal(t, testNow, output.StoredAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_KeepsProvidedAnalysisID(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	es := setupStubES(t, http.StatusOK)

	input := storedInput()
	input.AnalysisID = "analysis-given"
	mock.ExpectExec("INSERT INTO bid_analyses").
		WithArgs("analysis-given", "bid-001", "company-01", 92, "participate", sqlmock.AnyArg(), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := newTestHandler(t, db, es)
	output, err := h.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "analysis-given", output.AnalysisID)
}

func TestExecute_PartialScoresFallBackToAverage(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	es := setupStubES(t, http.StatusCreated)

	input := storedInput()
	input.Decision = nil
	input.Scores = models.ScoreSet{Financial: 80, Technical: 60} // average 70
	mock.ExpectExec("INSERT INTO bid_analyses").
		WithArgs("analysis-fixed-id", "bid-001", "company-01", 70, "", sqlmock.AnyArg(), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := newTestHandler(t, db, es)
	output, err := h.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 70, output.OverallScore)
}

func TestExecute_ReanalysisReplacesRowID(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	es := setupStubES(t, http.StatusOK)

	// A re-run mints a fresh analysis id, so the conflict update must rewrite
	// the row id too or the key and payload drift apart.
	mock.ExpectExec(`ON CONFLICT \(bid_id, company_id\) DO UPDATE SET\s+id = EXCLUDED\.id`).
		WithArgs("analysis-fixed-id", "bid-001", "company-01", 92, "participate", sqlmock.AnyArg(), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := newTestHandler(t, db, es)
	output, err := h.Execute(context.Background(), storedInput())

	require.NoError(t, err)
	assert.Equal(t, "analysis-fixed-id", output.AnalysisID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DatabaseFailureIsRetryable(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	es := setupStubES(t, http.StatusCreated)

	mock.ExpectExec("INSERT INTO bid_analyses").
		WillReturnError(sql.ErrConnDone)

	h := newTestHandler(t, db, es)
	_, err := h.Execute(context.Background(), storedInput())

	require.Error(t, err)
	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeAnalysisStoreFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecute_IndexFailureIsRetryable(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	es := setupStubES(t, http.StatusInternalServerError)

	mock.ExpectExec("INSERT INTO bid_analyses").
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := newTestHandler(t, db, es)
	_, err := h.Execute(context.Background(), storedInput())

	require.Error(t, err)
	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeAnalysisIndexFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
