package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/certportal/verification/client"
	"github.com/certportal/verification/dto"
)

// minTextForCrossCheck is the minimum amount of extracted text worth sending
// to the model; below this the narrative would just be guessing.
const minTextForCrossCheck = 100

const crossCheckSystemPrompt = "You are a document verification assistant for a government " +
	"certificate portal. You compare applicant-submitted details with text extracted from " +
	"their uploaded documents. Be precise and cite the specific fields you compared."

// CrossCheckService builds the advisory AI narrative. Its output augments
// the deterministic verdict but never changes the eligibility flag.
type CrossCheckService struct {
	groq *client.GroqClient
	log  *zap.SugaredLogger
}

func NewCrossCheckService(groq *client.GroqClient, log *zap.SugaredLogger) *CrossCheckService {
	return &CrossCheckService{
		groq: groq,
		log:  log,
	}
}

// Narrative asks the model to list field mismatches, assess eligibility and
// conclude Eligible or Not Eligible with justification.
func (s *CrossCheckService) Narrative(ctx context.Context, app *dto.Application, citizen *dto.Citizen, extractedText, query string) (string, error) {
	if !s.groq.Enabled() {
		return "", errors.New("groq API key not configured")
	}
	if len(strings.TrimSpace(extractedText)) < minTextForCrossCheck {
		return "", fmt.Errorf("extracted text too short for cross-check (%d chars)", len(extractedText))
	}

	prompt := s.buildPrompt(app, citizen, extractedText, query)

	narrative, err := s.groq.Complete(ctx, crossCheckSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("cross-check completion failed: %w", err)
	}
	return strings.TrimSpace(narrative), nil
}

func (s *CrossCheckService) buildPrompt(app *dto.Application, citizen *dto.Citizen, extractedText, query string) string {
	var b strings.Builder

	b.WriteString("Submitted application details:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", app.FirstName, app.LastName)
	fmt.Fprintf(&b, "- Date of birth: %s\n", app.DOB)
	fmt.Fprintf(&b, "- Document type applied for: %s\n", app.DocumentType)
	for key, value := range app.ExtractedDetails {
		fmt.Fprintf(&b, "- %s: %s\n", key, value)
	}

	b.WriteString("\nMaster registry record:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", citizen.FirstName, citizen.LastName)
	fmt.Fprintf(&b, "- Date of birth: %s\n", citizen.DOB)
	fmt.Fprintf(&b, "- Address: %s\n", citizen.Address)

	b.WriteString("\nText extracted from the uploaded documents:\n")
	b.WriteString(extractedText)

	if strings.TrimSpace(query) != "" {
		b.WriteString("\nAdmin question: ")
		b.WriteString(query)
		b.WriteString("\n")
	}

	b.WriteString("\nTasks:\n" +
		"1. List any mismatches between the submitted details, the registry record and the document text.\n" +
		"2. Assess the applicant's general eligibility for the document type.\n" +
		"3. Conclude with \"Eligible\" or \"Not Eligible\" and a one-sentence justification.\n")

	return b.String()
}
