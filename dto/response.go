package dto

import "errors"

// Configuration-class failures. These propagate to the HTTP layer as error
// responses; they are never folded into a verdict's mismatch list.
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrRuleNotFound        = errors.New("no rule configured for document type")
)

// ReasonNoCitizenRecord is the single mismatch reported when neither the
// identifier nor the name+DOB lookup resolves a master citizen record.
const ReasonNoCitizenRecord = "No master citizen record found"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
