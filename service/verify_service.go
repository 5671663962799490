package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/certportal/verification/client"
	"github.com/certportal/verification/dto"
	"github.com/certportal/verification/metrics"
)

// ApplicationStore is the persistence surface the engine needs.
type ApplicationStore interface {
	GetByID(ctx context.Context, id string) (*dto.Application, error)
	SaveVerification(ctx context.Context, id string, rejectionReason string, extracted map[string]string) error
}

// RuleStore yields the proof checklist for a document type, or
// dto.ErrRuleNotFound when the type is unconfigured.
type RuleStore interface {
	GetRule(ctx context.Context, documentType string) (*dto.DocumentRule, error)
}

// Resolver resolves an application to a master citizen record. A nil citizen
// with nil error means no record matched.
type Resolver interface {
	Resolve(ctx context.Context, app *dto.Application) (*dto.Citizen, error)
}

// CrossChecker produces the advisory AI narrative. It may be nil.
type CrossChecker interface {
	Narrative(ctx context.Context, app *dto.Application, citizen *dto.Citizen, extractedText, query string) (string, error)
}

// VerifyService runs the eligibility decision procedure for one application.
type VerifyService struct {
	apps     ApplicationStore
	rules    RuleStore
	resolver Resolver
	ocr      Extractor
	checks   map[string]ProofCheck
	cross    CrossChecker
	log      *zap.SugaredLogger
}

func NewVerifyService(
	apps ApplicationStore,
	rules RuleStore,
	resolver Resolver,
	ocr Extractor,
	checks map[string]ProofCheck,
	cross CrossChecker,
	log *zap.SugaredLogger,
) *VerifyService {
	return &VerifyService{
		apps:     apps,
		rules:    rules,
		resolver: resolver,
		ocr:      ocr,
		checks:   checks,
		cross:    cross,
		log:      log,
	}
}

// VerifyApplication loads the application, resolves rule and citizen, runs
// every proof check, and merges the verdict back onto the record. A missing
// rule or application is a configuration error and propagates; a missing
// citizen record is a normal negative verdict.
func (s *VerifyService) VerifyApplication(ctx context.Context, id, query string) (dto.Verdict, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues("error").Inc()
		return dto.Verdict{}, err
	}

	rule, err := s.rules.GetRule(ctx, app.DocumentType)
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues("error").Inc()
		return dto.Verdict{}, fmt.Errorf("document type %q: %w", app.DocumentType, err)
	}

	citizen, err := s.resolver.Resolve(ctx, app)
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues("error").Inc()
		return dto.Verdict{}, err
	}
	if citizen == nil {
		s.log.Infow("no master citizen record", "application", app.ID)
		verdict := dto.NewVerdict([]string{dto.ReasonNoCitizenRecord})
		s.persist(ctx, app, verdict)
		metrics.VerificationsTotal.WithLabelValues("ineligible").Inc()
		return verdict, nil
	}

	verdict := s.Verify(ctx, app, citizen, rule)

	if s.cross != nil {
		if narrative := s.runCrossCheck(ctx, app, citizen, rule, query); narrative != "" {
			verdict.Narrative = narrative
		}
	}

	s.persist(ctx, app, verdict)

	outcome := "ineligible"
	if verdict.Eligible {
		outcome = "eligible"
	}
	metrics.VerificationsTotal.WithLabelValues(outcome).Inc()
	s.log.Infow("verification finished",
		"application", app.ID,
		"document_type", app.DocumentType,
		"eligible", verdict.Eligible,
		"mismatches", len(verdict.MismatchReasons),
	)
	return verdict, nil
}

// Verify evaluates every required proof in the rule's declared order. No
// early exit: each proof contributes at most one mismatch, and the mismatch
// list order follows checklist order. Eligibility is purely derived.
func (s *VerifyService) Verify(ctx context.Context, app *dto.Application, citizen *dto.Citizen, rule *dto.DocumentRule) dto.Verdict {
	mismatches := []string{}

	for _, proof := range rule.RequiredProofs {
		filePath, ok := app.Proofs[proof]
		if !ok || filePath == "" {
			mismatches = append(mismatches, fmt.Sprintf("Missing upload for %q", proof))
			continue
		}

		check, ok := s.checks[proof]
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("No check implemented for %q", proof))
			continue
		}

		in := CheckInput{
			App:      app,
			Citizen:  citizen,
			Rule:     rule,
			Proof:    proof,
			FilePath: filePath,
		}

		reason, err := check.Evaluate(ctx, s.ocr, in)
		if err != nil {
			s.log.Warnw("proof OCR failed", "application", app.ID, "proof", proof, "error", err)
			mismatches = append(mismatches, fmt.Sprintf("Could not OCR %s", proof))
			continue
		}
		if reason != "" {
			mismatches = append(mismatches, reason)
		}
	}

	return dto.NewVerdict(mismatches)
}

// runCrossCheck gathers the full text already extracted for the rule's
// proofs and asks the AI collaborator for a narrative. Best effort only;
// failures never disturb the deterministic verdict.
func (s *VerifyService) runCrossCheck(ctx context.Context, app *dto.Application, citizen *dto.Citizen, rule *dto.DocumentRule, query string) string {
	var combined strings.Builder
	for _, proof := range rule.RequiredProofs {
		filePath, ok := app.Proofs[proof]
		if !ok || filePath == "" {
			continue
		}
		text, err := s.ocr.Extract(ctx, filePath, client.ModeFullText)
		if err != nil {
			continue
		}
		combined.WriteString(text)
		combined.WriteString("\n")
	}

	narrative, err := s.cross.Narrative(ctx, app, citizen, combined.String(), query)
	if err != nil {
		metrics.CrossCheckFailuresTotal.Inc()
		s.log.Warnw("ai cross-check failed", "application", app.ID, "error", err)
		return ""
	}
	return narrative
}

// persist merges the verdict back onto the application record. The narrative
// (or, failing that, the joined mismatches) lands in the rejection-reason
// field; extracted details gathered along the way are kept for reuse.
func (s *VerifyService) persist(ctx context.Context, app *dto.Application, verdict dto.Verdict) {
	reason := verdict.Narrative
	if reason == "" && !verdict.Eligible {
		reason = strings.Join(verdict.MismatchReasons, "; ")
	}

	if err := s.apps.SaveVerification(ctx, app.ID, reason, app.ExtractedDetails); err != nil {
		s.log.Warnw("failed to persist verification result", "application", app.ID, "error", err)
	}
}
