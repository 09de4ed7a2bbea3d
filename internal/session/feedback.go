package session

import "time"

// FeedbackKind tags the outcome of the latest decision.
type FeedbackKind string

// Feedback kinds. FeedbackNone means nothing is displayed.
const (
	FeedbackNone      FeedbackKind = ""
	FeedbackCorrect   FeedbackKind = "correct"
	FeedbackIncorrect FeedbackKind = "incorrect"
)

// Display durations for transient feedback.
const (
	CorrectFeedbackDuration   = 500 * time.Millisecond
	IncorrectFeedbackDuration = 1000 * time.Millisecond
)

// Feedback is the short-lived result of the most recent decision.
type Feedback struct {
	Kind    FeedbackKind
	Message string
	Gen     uint64
}

// Expiry asks the caller to clear feedback Gen after the given delay.
type Expiry struct {
	Gen   uint64
	After time.Duration
}

type feedbackTimer struct {
	current Feedback
	gen     uint64
}

func (f *feedbackTimer) show(kind FeedbackKind, message string) Expiry {
	f.gen++
	f.current = Feedback{Kind: kind, Message: message, Gen: f.gen}
	after := CorrectFeedbackDuration
	if kind == FeedbackIncorrect {
		after = IncorrectFeedbackDuration
	}
	return Expiry{Gen: f.gen, After: after}
}

// expire clears feedback only if gen is still the one on display.
func (f *feedbackTimer) expire(gen uint64) bool {
	if gen != f.gen || f.current.Kind == FeedbackNone {
		return false
	}
	f.current = Feedback{}
	return true
}

// cancel drops displayed feedback and invalidates outstanding expiries.
func (f *feedbackTimer) cancel() {
	f.gen++
	f.current = Feedback{}
}
