package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pkg/errors"

	"vibe-resume/internal/domain"
	"vibe-resume/pkg/fetch"
)

// Assistant is the reasoning-model surface the conversation depends on.
type Assistant interface {
	Classify(ctx context.Context, input string) (string, error)
	Advise(ctx context.Context, question, docContext string) (string, error)
	GenerateLaTeX(ctx context.Context, input string, modification bool) (string, error)
}

// SessionStore is the session persistence surface. Get returns (nil, nil)
// for an unknown id; sessions are created lazily.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Put(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// Fetcher retrieves the text of a profile URL mentioned in a turn.
type Fetcher interface {
	PageText(ctx context.Context, rawURL string) (string, error)
}

const noResumeSentinel = "No resume loaded yet. Please create or upload a resume first."

// Turn is one inbound user message with its already-extracted attachments.
type Turn struct {
	Message string
	// UploadText is the extracted text of an uploaded document; HasUpload is
	// set even when extraction degraded to an explanatory message.
	UploadText string
	HasUpload  bool
	// CurrentLatex, when non-empty, overrides the stored source for this
	// turn. The editor sends it so manual edits are respected.
	CurrentLatex string
}

// TurnResult is the structured outcome of one turn. Exactly one field is
// set.
type TurnResult struct {
	// NewSource is the freshly generated document source.
	NewSource string
	// Advice is a conversational reply that left the document untouched.
	Advice string
	// Rejection explains why the turn was not acted on.
	Rejection string
}

// Conversation is the per-turn state machine: classify (or bypass), then
// generate, advise or reject, persisting session state before returning.
type Conversation struct {
	assistant  Assistant
	classifier *Classifier
	store      SessionStore
	fetcher    Fetcher
}

func NewConversation(assistant Assistant, classifier *Classifier, store SessionStore, fetcher Fetcher) *Conversation {
	return &Conversation{assistant: assistant, classifier: classifier, store: store, fetcher: fetcher}
}

// HandleTurn routes one user turn. An error return means the turn could not
// be processed at all (store failure); routed outcomes, including rejections
// and generation failures, come back inside TurnResult.
func (c *Conversation) HandleTurn(ctx context.Context, sessionID string, turn Turn) (TurnResult, error) {
	sess, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return TurnResult{}, err
	}
	if sess == nil {
		sess = domain.NewSession(sessionID)
	}
	// The editor-supplied source is context for this turn, never a write by
	// itself: only a successful generation may move it into the record.
	current := sess.Latex
	if turn.CurrentLatex != "" {
		current = turn.CurrentLatex
	}

	input := strings.TrimSpace(turn.Message)
	if turn.HasUpload && turn.UploadText != "" {
		if input != "" {
			input = fmt.Sprintf("Resume content from document:\n%s\n\nUser request: %s", turn.UploadText, input)
		} else {
			input = fmt.Sprintf("Create a LaTeX resume from this content:\n%s", turn.UploadText)
		}
	}

	// A URL in the turn is unambiguous evidence of intent to generate, as
	// is an upload: both bypass classification entirely.
	urlFound := false
	if u := fetch.FindURL(turn.Message); u != "" {
		urlFound = true
		if c.fetcher != nil {
			if text, fetchErr := c.fetcher.PageText(ctx, u); fetchErr == nil {
				input = fmt.Sprintf("%s\n\nProfile content from %s:\n%s", input, u, text)
			} else {
				log.Printf("conversation: profile fetch failed: %v", fetchErr)
			}
		}
	}

	if input == "" {
		return TurnResult{Rejection: "Please provide some input"}, nil
	}

	verdict := domain.Classification{Verdict: domain.VerdictGenerate}
	if !turn.HasUpload && !urlFound {
		verdict = c.classifier.Classify(ctx, input)
	}

	switch verdict.Verdict {
	case domain.VerdictInvalid, domain.VerdictNotAResume:
		reason := verdict.Reason
		if reason == "" {
			reason = genericRejection
		}
		return TurnResult{Rejection: reason}, nil

	case domain.VerdictQuestion:
		return c.answerQuestion(ctx, sess, turn.Message, current)

	default:
		return c.generateDocument(ctx, sess, turn, input, current)
	}
}

// answerQuestion supplies the current document as context and surfaces the
// model's reply. The stored source is never modified here, whatever the
// call's outcome.
func (c *Conversation) answerQuestion(ctx context.Context, sess *domain.Session, question, docContext string) (TurnResult, error) {
	if docContext == "" {
		docContext = noResumeSentinel
	}

	advice, err := c.assistant.Advise(ctx, question, docContext)
	if err != nil {
		advice = fmt.Sprintf("I couldn't answer that right now: %v", errors.Cause(err))
	}

	sess.Append("user", question)
	sess.Append("assistant", advice)
	if err := c.store.Put(ctx, sess); err != nil {
		return TurnResult{}, err
	}
	return TurnResult{Advice: advice}, nil
}

// generateDocument frames the request, calls generation, and commits the
// new source. A failed call or an error reply leaves the stored source
// exactly as it was before the turn.
func (c *Conversation) generateDocument(ctx context.Context, sess *domain.Session, turn Turn, input, current string) (TurnResult, error) {
	isModification := current != "" && strings.TrimSpace(turn.Message) != "" && !turn.HasUpload
	if isModification {
		input = fmt.Sprintf("Current LaTeX code:\n%s\n\nModification request: %s", current, turn.Message)
	}

	source, err := c.assistant.GenerateLaTeX(ctx, input, isModification)
	if err != nil {
		return TurnResult{Rejection: fmt.Sprintf("Error generating LaTeX: %v", errors.Cause(err))}, nil
	}
	// A reply that opens with "Error" is the model reporting failure, not a
	// document.
	if strings.HasPrefix(source, "Error") {
		return TurnResult{Rejection: source}, nil
	}

	sess.Append("user", turn.Message)
	sess.Append("assistant", "Updated the resume.")
	// A successful generation commits the editor-supplied source as the
	// checkpointed predecessor, so rollback restores what the user last saw.
	if turn.CurrentLatex != "" {
		sess.Latex = turn.CurrentLatex
	}
	sess.SetLatex(source, checkpointLabel(turn.Message))
	if err := c.store.Put(ctx, sess); err != nil {
		return TurnResult{}, err
	}
	return TurnResult{NewSource: source}, nil
}

// Clear resets a session to empty.
func (c *Conversation) Clear(ctx context.Context, sessionID string) error {
	return c.store.Delete(ctx, sessionID)
}

func checkpointLabel(message string) string {
	label := strings.TrimSpace(message)
	if label == "" {
		label = "document upload"
	}
	// Truncate on a rune boundary so a multi-byte character is never split.
	if runes := []rune(label); len(runes) > 40 {
		label = string(runes[:40])
	}
	return "Before: " + label
}
