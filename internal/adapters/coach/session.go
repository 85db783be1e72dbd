package coach

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
)

// Fixed replies shown instead of the coach's answer.
const (
	FailureText     = "Sorry, there was a problem contacting the wellness coach."
	EmptyAnswerText = "Sorry, I could not generate a reply."
)

// DefaultMaxHistory is the number of messages kept in the conversation.
const DefaultMaxHistory = 40

// Outcome labels recorded per request.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
	OutcomeStale = "stale"
)

// Reply is what the caller shows for one question.
type Reply struct {
	Answer   string
	Stale    bool
	Fallback bool
	Outcome  string
}

// Session keeps the chat history of one device. Each question takes a new
// generation; a reply that is no longer the newest is returned as stale and
// not recorded.
type Session struct {
	mu         sync.Mutex
	client     Client
	history    []Message
	generation uint64
	maxHistory int
	log        logger.Logger
}

// SessionOption applies a configuration option to the Session.
type SessionOption func(*Session)

// WithMaxHistory caps the stored conversation length.
func WithMaxHistory(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.maxHistory = n
		}
	}
}

// WithSessionLogger sets the logger for coaching failures.
func WithSessionLogger(l logger.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession creates a session. A nil client makes every question fail with
// FailureText.
func NewSession(client Client, opts ...SessionOption) *Session {
	s := &Session{
		client:     client,
		maxHistory: DefaultMaxHistory,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a client is configured.
func (s *Session) Available() bool { return s.client != nil }

// Ask records the question, calls the coach and records the answer when it
// is still the newest. Errors never reach the caller; they are logged and
// replaced by FailureText.
func (s *Session) Ask(ctx context.Context, question string, latest *model.HistoryEntry, profile *model.Profile) Reply {
	question = strings.TrimSpace(question)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.appendLocked(Message{Role: RoleUser, Content: question})
	req := Request{
		Question:    question,
		ChatHistory: append([]Message(nil), s.history...),
		LatestScan:  latest,
		Profile:     profile,
	}
	s.mu.Unlock()

	start := time.Now()
	var (
		resp Response
		err  = ErrNotConfigured
	)
	if s.client != nil {
		resp, err = s.client.Ask(ctx, req)
	}
	took := time.Since(start)

	s.mu.Lock()
	defer s.mu.Unlock()

	var reply Reply
	switch {
	case err != nil:
		s.log.Warn(ctx, "coach request failed",
			logger.Error(err),
			logger.Duration("took", took),
		)
		reply = Reply{Answer: FailureText, Fallback: true, Outcome: OutcomeError}
	case strings.TrimSpace(resp.Answer) == "":
		reply = Reply{Answer: EmptyAnswerText, Fallback: true, Outcome: OutcomeEmpty}
	default:
		reply = Reply{Answer: resp.Answer, Outcome: OutcomeOK}
	}

	if gen != s.generation {
		reply.Stale = true
		reply.Outcome = OutcomeStale
	} else if reply.Outcome != OutcomeError {
		s.appendLocked(Message{Role: RoleAssistant, Content: reply.Answer})
	}
	metrics.RecordCoachRequest(reply.Outcome, float64(took.Microseconds())/1000)
	return reply
}

// History returns a copy of the conversation.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}

// Reset clears the conversation and invalidates in-flight replies.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.generation++
}

func (s *Session) appendLocked(m Message) {
	s.history = append(s.history, m)
	if over := len(s.history) - s.maxHistory; over > 0 {
		s.history = append([]Message(nil), s.history[over:]...)
	}
}
