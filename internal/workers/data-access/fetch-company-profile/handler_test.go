// internal/workers/data-access/fetch-company-profile/handler_test.go
package fetchcompanyprofile

import (
	"context"
	"database/sql"
	"testing"
	"time"

	commonerrors "edital-workers/internal/common/errors"
	"edital-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		CacheTTL: 10 * time.Minute,
		Timeout:  5 * time.Second,
	}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func validProfileJSON() string {
	return `{
		"id": "company-01",
		"name": "Acme Sistemas",
		"size": "small",
		"taxRegime": "simples",
		"annualRevenue": 1500000,
		"state": "BA",
		"expertiseAreas": ["desenvolvimento de software"],
		"technologies": ["Java", "PostgreSQL"],
		"concurrentCapacity": 3
	}`
}

func TestExecute_CacheHitReturnsProfile(t *testing.T) {
	db, dbMock := setupMockDB(t)
	defer db.Close()
	redisClient, redisMock := redismock.NewClientMock()

	redisMock.ExpectGet("profile:company-01").SetVal(validProfileJSON())

	h := NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{CompanyID: "company-01"})

	require.NoError(t, err)
	assert.Equal(t, "Acme Sistemas", output.Profile.Name)
	assert.True(t, output.Profile.Size.QualifiesForSmallBizBenefit())
	assert.NoError(t, redisMock.ExpectationsWereMet())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestExecute_CacheMissReadsDatabase(t *testing.T) {
	db, dbMock := setupMockDB(t)
	defer db.Close()
	redisClient, redisMock := redismock.NewClientMock()

	payload := []byte(validProfileJSON())
	redisMock.ExpectGet("profile:company-01").RedisNil()
	dbMock.ExpectQuery("SELECT payload FROM company_profiles").
		WithArgs("company-01").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))
	redisMock.ExpectSet("profile:company-01", payload, 10*time.Minute).SetVal("OK")

	h := NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{CompanyID: "company-01"})

	require.NoError(t, err)
	assert.Equal(t, "company-01", output.Profile.ID)
	assert.Equal(t, 1500000.0, output.Profile.AnnualRevenue)
	assert.NoError(t, redisMock.ExpectationsWereMet())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestExecute_UnknownCompanyReturnsNotFound(t *testing.T) {
	db, dbMock := setupMockDB(t)
	defer db.Close()
	redisClient, redisMock := redismock.NewClientMock()

	redisMock.ExpectGet("profile:ghost").RedisNil()
	dbMock.ExpectQuery("SELECT payload FROM company_profiles").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	h := NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{CompanyID: "ghost"})

	require.Error(t, err)
	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeProfileNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestExecute_InvalidSizeFailsValidation(t *testing.T) {
	db, dbMock := setupMockDB(t)
	defer db.Close()
	redisClient, redisMock := redismock.NewClientMock()

	badPayload := []byte(`{"id": "company-02", "name": "X", "size": "gigantic"}`)
	redisMock.ExpectGet("profile:company-02").RedisNil()
	dbMock.ExpectQuery("SELECT payload FROM company_profiles").
		WithArgs("company-02").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(badPayload))

	h := NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{CompanyID: "company-02"})

	require.Error(t, err)
	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeProfileValidationFailed, stdErr.Code)
}
