package usecase

import (
	"context"
	"log"
	"strings"

	"vibe-resume/internal/domain"
)

// Rejection messages surfaced to the user when a turn cannot be routed to
// generation or advice.
const (
	genericRejection = "I'm a resume builder assistant. I can help you create, modify, or improve resumes. Please provide resume-related information or upload a resume PDF."
	notAResumeReason = "The uploaded document doesn't appear to be a resume. Please upload a valid resume/CV."
	serviceRejection = "The assistant is temporarily unavailable. Please try again."
)

// Classifier routes a free-text turn into one of four categories by asking
// the reasoning model and prefix-matching its reply. It never lets a
// garbage reply escape as an error: anything unrecognized is coerced to an
// Invalid verdict.
type Classifier struct {
	assistant Assistant
	// failOpen maps a failed model call to Generate instead of Invalid.
	// Blocking a user on a transient outage is considered worse than
	// occasionally mis-routing one turn, but the policy is debatable, so it
	// stays configurable.
	failOpen bool
}

func NewClassifier(assistant Assistant, failOpen bool) *Classifier {
	return &Classifier{assistant: assistant, failOpen: failOpen}
}

func (c *Classifier) Classify(ctx context.Context, input string) domain.Classification {
	reply, err := c.assistant.Classify(ctx, input)
	if err != nil {
		log.Printf("classifier: model call failed: %v", err)
		if c.failOpen {
			return domain.Classification{Verdict: domain.VerdictGenerate}
		}
		return domain.Classification{Verdict: domain.VerdictInvalid, Reason: serviceRejection}
	}
	return parseVerdict(reply)
}

// parseVerdict matches the reply against the four category tokens,
// case-insensitively. The part after the first colon is kept as the reason.
func parseVerdict(reply string) domain.Classification {
	normalized := strings.ToUpper(strings.TrimSpace(reply))
	reason := ""
	if _, after, ok := strings.Cut(strings.TrimSpace(reply), ":"); ok {
		reason = strings.TrimSpace(after)
	}

	switch {
	case strings.HasPrefix(normalized, "GENERATE"):
		return domain.Classification{Verdict: domain.VerdictGenerate, Reason: reason}
	case strings.HasPrefix(normalized, "QUESTION"):
		return domain.Classification{Verdict: domain.VerdictQuestion, Reason: reason}
	case strings.HasPrefix(normalized, "NOT_A_RESUME"):
		return domain.Classification{Verdict: domain.VerdictNotAResume, Reason: notAResumeReason}
	case strings.HasPrefix(normalized, "INVALID"):
		return domain.Classification{Verdict: domain.VerdictInvalid, Reason: genericRejection}
	default:
		return domain.Classification{Verdict: domain.VerdictInvalid, Reason: genericRejection}
	}
}
