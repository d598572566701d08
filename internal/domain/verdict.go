package domain

// Verdict is the category assigned to one user turn. It is consumed
// immediately by the conversation state machine and never persisted.
type Verdict int

const (
	VerdictGenerate Verdict = iota
	VerdictQuestion
	VerdictInvalid
	VerdictNotAResume
)

func (v Verdict) String() string {
	switch v {
	case VerdictGenerate:
		return "generate"
	case VerdictQuestion:
		return "question"
	case VerdictNotAResume:
		return "not_a_resume"
	default:
		return "invalid"
	}
}

// Classification pairs a verdict with an optional human-readable reason.
type Classification struct {
	Verdict Verdict
	Reason  string
}
