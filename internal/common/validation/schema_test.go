package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBid_AcceptsCompleteDocument(t *testing.T) {
	doc := []byte(`{
		"id": "bid-001",
		"number": "PE-042/2025",
		"modality": "pregao-eletronico",
		"objectDescription": "Desenvolvimento de sistema de gestão",
		"estimatedValue": 250000,
		"executionDays": 90,
		"allowsConsortium": true,
		"smallBusinessBenefit": false,
		"requiredDocuments": ["certidao negativa", "balanço patrimonial"]
	}`)

	result, err := ValidateBid(doc)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateBid_RejectsMissingRequiredFields(t *testing.T) {
	doc := []byte(`{"number": "PE-042/2025"}`)

	result, err := ValidateBid(doc)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	messages := result.GetErrorMessages()
	assert.NotEmpty(t, messages)
}

func TestValidateBid_RejectsUnknownModality(t *testing.T) {
	doc := []byte(`{
		"id": "bid-001",
		"modality": "leilao-reverso",
		"objectDescription": "Serviços de TI",
		"estimatedValue": 100000
	}`)

	result, err := ValidateBid(doc)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateBid_RejectsNegativeValue(t *testing.T) {
	doc := []byte(`{
		"id": "bid-001",
		"modality": "concorrencia",
		"objectDescription": "Obra de infraestrutura",
		"estimatedValue": -1
	}`)

	result, err := ValidateBid(doc)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateProfile_AcceptsCompleteDocument(t *testing.T) {
	doc := []byte(`{
		"id": "company-01",
		"name": "TechSol Sistemas LTDA",
		"size": "small",
		"annualRevenue": 3600000,
		"state": "BA",
		"expertiseAreas": ["desenvolvimento de software"],
		"concurrentCapacity": 3
	}`)

	result, err := ValidateProfile(doc)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateProfile_RejectsInvalidSize(t *testing.T) {
	doc := []byte(`{"id": "company-01", "name": "TechSol", "size": "gigantic"}`)

	result, err := ValidateProfile(doc)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateJSON_ErrorsOnMalformedDocument(t *testing.T) {
	_, err := ValidateBid([]byte(`{not json`))
	assert.Error(t, err)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("licitacoes@empresa.com.br"))
	assert.True(t, ValidateEmail("ana.souza+editais@example.org"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("faltou@dominio"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+5511987654321"))
	assert.True(t, ValidatePhone("(71) 3333-4444"))
	assert.False(t, ValidatePhone("123"))
	assert.False(t, ValidatePhone("abc-def-ghij"))
}
