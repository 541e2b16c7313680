// Package validation checks inbound job payloads against JSON schemas before
// any scoring runs, so malformed editais fail fast with field-level errors.
package validation

import (
	"fmt"
	"regexp"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// BidSchema validates the edital payload coming from the aggregator feed.
// Dates are ISO-8601 strings; monetary values are plain numbers in BRL.
const BidSchema = `{
  "type": "object",
  "required": ["id", "modality", "objectDescription", "estimatedValue"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "number": {"type": "string"},
    "modality": {
      "type": "string",
      "enum": [
        "pregao-eletronico", "pregao-presencial", "concorrencia",
        "tomada-de-precos", "convite", "registro-de-precos",
        "dispensa-emergencial"
      ]
    },
    "judgingCriterion": {"type": "string"},
    "body": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "state": {"type": "string", "maxLength": 2},
        "cnpj": {"type": "string"}
      }
    },
    "objectDescription": {"type": "string", "minLength": 1},
    "estimatedValue": {"type": "number", "minimum": 0},
    "openingDate": {"type": "string"},
    "questionDeadline": {"type": "string"},
    "challengeDeadline": {"type": "string"},
    "executionDays": {"type": "integer", "minimum": 0},
    "validityMonths": {"type": "integer", "minimum": 0},
    "paymentTermDays": {"type": "integer", "minimum": 0},
    "allowsSubcontracting": {"type": "boolean"},
    "allowsConsortium": {"type": "boolean"},
    "smallBusinessBenefit": {"type": "boolean"},
    "requiredDocuments": {"type": "array", "items": {"type": "string"}},
    "qualification": {
      "type": "object",
      "properties": {
        "technical": {"type": "array", "items": {"type": "string"}},
        "economic": {"type": "array", "items": {"type": "string"}},
        "legal": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

// ProfileSchema validates the company profile payload.
const ProfileSchema = `{
  "type": "object",
  "required": ["id", "name", "size"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "size": {"type": "string", "enum": ["micro", "small", "medium", "large"]},
    "taxRegime": {"type": "string"},
    "annualRevenue": {"type": "number", "minimum": 0},
    "state": {"type": "string", "maxLength": 2},
    "expertiseAreas": {"type": "array", "items": {"type": "string"}},
    "technologies": {"type": "array", "items": {"type": "string"}},
    "concurrentCapacity": {"type": "integer", "minimum": 0}
  }
}`

// ValidateJSON checks a raw JSON document against a schema string.
func ValidateJSON(schemaJSON string, document []byte) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed to run: %w", err)
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return vr, nil
}

// ValidateBid checks a raw edital document.
func ValidateBid(document []byte) (*ValidationResult, error) {
	return ValidateJSON(BidSchema, document)
}

// ValidateProfile checks a raw company profile document.
func ValidateProfile(document []byte) (*ValidationResult, error) {
	return ValidateJSON(ProfileSchema, document)
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	emailPattern := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	phonePattern := regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	return phonePattern.MatchString(phone)
}
