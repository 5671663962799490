package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/certportal/verification/client"
	"github.com/certportal/verification/dto"
	"github.com/certportal/verification/utils"
)

// CheckInput carries everything one proof check may consult.
type CheckInput struct {
	App      *dto.Application
	Citizen  *dto.Citizen
	Rule     *dto.DocumentRule
	Proof    string
	FilePath string
}

// ProofCheck evaluates a single required proof. Return values:
// ("", nil) the proof passed; (reason, nil) the proof mismatched;
// ("", err) OCR failed, which the engine reports and moves on from.
type ProofCheck interface {
	Evaluate(ctx context.Context, ocr Extractor, in CheckInput) (string, error)
}

// nowFunc is swapped in tests to pin the age computation.
var nowFunc = time.Now

// AgeThresholdCheck passes when the citizen's registry age meets the rule's
// minimum. Age is calendar-aware: the year difference is decremented when
// the current month/day precedes the birth month/day.
type AgeThresholdCheck struct {
	DefaultMinAge int
}

func (c AgeThresholdCheck) Evaluate(_ context.Context, _ Extractor, in CheckInput) (string, error) {
	minAge := in.Rule.MinAge
	if minAge <= 0 {
		minAge = c.DefaultMinAge
	}

	dob, err := utils.ParseDOB(in.Citizen.DOB)
	if err != nil {
		return fmt.Sprintf("%s failed: registry date of birth %q is unreadable", in.Proof, in.Citizen.DOB), nil
	}

	age := utils.AgeAt(dob, nowFunc())
	if age < minAge {
		return fmt.Sprintf("%s failed: applicant age %d is below the required %d", in.Proof, age, minAge), nil
	}
	return "", nil
}

// IdentifierMatchCheck compares the submitted identifier against the
// registry. The value comes from extracted fields when present, otherwise
// from a digits-mode OCR pass over the proof file.
type IdentifierMatchCheck struct{}

func (c IdentifierMatchCheck) Evaluate(ctx context.Context, ocr Extractor, in CheckInput) (string, error) {
	var candidate string
	for _, key := range identifierAliasKeys {
		digits := utils.ExtractDigits(in.App.ExtractedDetails[key])
		if len(digits) == aadhaarLength {
			candidate = digits
			break
		}
	}

	if candidate == "" {
		text, err := ocr.Extract(ctx, in.FilePath, client.ModeDigits)
		if err != nil {
			return "", err
		}
		candidate = utils.ExtractDigits(text)
	}

	stored := utils.ExtractDigits(in.Citizen.AadhaarNumber)
	if candidate != stored {
		return fmt.Sprintf("%s number does not match the citizen registry", in.Proof), nil
	}
	return "", nil
}

// AddressSubstringCheck passes when the raw OCR text contains the first
// comma-delimited segment of the registry address. Deliberately loose; OCR
// noise makes exact address matching useless in practice.
type AddressSubstringCheck struct{}

func (c AddressSubstringCheck) Evaluate(ctx context.Context, ocr Extractor, in CheckInput) (string, error) {
	segment := strings.TrimSpace(strings.SplitN(in.Citizen.Address, ",", 2)[0])
	if segment == "" {
		return fmt.Sprintf("%s failed: no registry address on file to match against", in.Proof), nil
	}

	text, err := ocr.Extract(ctx, in.FilePath, client.ModeFullText)
	if err != nil {
		return "", err
	}

	if !strings.Contains(text, segment) {
		return fmt.Sprintf("%s does not mention the registered address", in.Proof), nil
	}
	return "", nil
}

// FreeTextPresenceCheck runs full-text OCR and requires each expected token
// to appear verbatim in the output.
type FreeTextPresenceCheck struct {
	Tokens func(in CheckInput) []string
}

func (c FreeTextPresenceCheck) Evaluate(ctx context.Context, ocr Extractor, in CheckInput) (string, error) {
	text, err := ocr.Extract(ctx, in.FilePath, client.ModeFullText)
	if err != nil {
		return "", err
	}

	for _, token := range c.Tokens(in) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if !strings.Contains(text, token) {
			return fmt.Sprintf("%s does not mention %q", in.Proof, token), nil
		}
	}
	return "", nil
}

// PresenceWithOCRCheck passes once full-text OCR succeeds on the file. These
// checks are non-authoritative: the document's content is not validated
// beyond being machine-readable, and richer review is left to the advisory
// cross-check and the human admin.
type PresenceWithOCRCheck struct{}

func (c PresenceWithOCRCheck) Evaluate(ctx context.Context, ocr Extractor, in CheckInput) (string, error) {
	if _, err := ocr.Extract(ctx, in.FilePath, client.ModeFullText); err != nil {
		return "", err
	}
	return "", nil
}

// FilePresenceCheck passes as soon as the upload exists; no OCR is run.
type FilePresenceCheck struct{}

func (c FilePresenceCheck) Evaluate(_ context.Context, _ Extractor, _ CheckInput) (string, error) {
	return "", nil
}

// NewCheckRegistry maps proof names to their evaluation strategy. Proof
// names not present here are reported as unimplemented by the engine.
func NewCheckRegistry() map[string]ProofCheck {
	parentTokens := func(in CheckInput) []string {
		return []string{in.Citizen.FatherName, in.Citizen.MotherName}
	}
	spouseTokens := func(in CheckInput) []string {
		return []string{in.Citizen.FirstName, in.Citizen.SpouseName}
	}

	return map[string]ProofCheck{
		"Age Proof": AgeThresholdCheck{DefaultMinAge: 60},

		"Aadhaar Card":   IdentifierMatchCheck{},
		"Identity Proof": IdentifierMatchCheck{},

		"Address Proof":   AddressSubstringCheck{},
		"Residence Proof": AddressSubstringCheck{},

		"Parent Identity Proof": FreeTextPresenceCheck{Tokens: parentTokens},
		"Marriage Certificate":  FreeTextPresenceCheck{Tokens: spouseTokens},

		// Presence-only stubs: pass once the file OCRs at all.
		"Income Proof":               PresenceWithOCRCheck{},
		"Bank Statement":             PresenceWithOCRCheck{},
		"Land Ownership Proof":       PresenceWithOCRCheck{},
		"Caste Proof":                PresenceWithOCRCheck{},
		"Employer Details":           PresenceWithOCRCheck{},
		"School Leaving Certificate": PresenceWithOCRCheck{},

		"Factory Layout Plan":   FilePresenceCheck{},
		"Manufacturer Approval": FilePresenceCheck{},
	}
}
