package quiz

import (
	"errors"
	"time"
)

// State is the lifecycle phase of a quiz session.
type State string

const (
	StateNotStarted   State = "not_started"
	StateInProgress   State = "in_progress"
	StateAwaitingNext State = "awaiting_next"
	StateCompleted    State = "completed"
)

// DefaultTimeLimit is the per-question countdown in seconds.
const DefaultTimeLimit = 30

// TimeUpAnswer is the sentinel recorded when a question's timer expires
// before an answer arrives.
const TimeUpAnswer = "Time up"

var (
	ErrNoQuestions     = errors.New("quiz: session needs at least one question")
	ErrAlreadyStarted  = errors.New("quiz: session was already started")
	ErrNotInProgress   = errors.New("quiz: no question is awaiting an answer")
	ErrAlreadyAnswered = errors.New("quiz: current question was already answered")
	ErrNotAwaitingNext = errors.New("quiz: no answered question to advance from")
)

// Answer records the outcome of one question within a run.
type Answer struct {
	QuestionID       string `json:"question_id"`
	Selected         string `json:"selected_answer"`
	Correct          bool   `json:"is_correct"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// Result summarizes a completed run.
type Result struct {
	Score            int      `json:"score"`
	TotalQuestions   int      `json:"total_questions"`
	CorrectAnswers   int      `json:"correct_answers"`
	AccuracyPercent  int      `json:"accuracy_percent"`
	TimeSpentSeconds int      `json:"time_spent_seconds"`
	Answers          []Answer `json:"answers"`
}

// SessionConfig tunes a session. Zero values select the defaults.
type SessionConfig struct {
	TimeLimitSeconds int
	Policy           ScoringPolicy
	Clock            func() time.Time
}

// Session walks a fixed question list as a state machine. It is not safe
// for concurrent use; callers serialize access.
type Session struct {
	questions []Question
	policy    ScoringPolicy
	clock     func() time.Time
	timeLimit int

	state     State
	index     int
	remaining int
	answers   []Answer
	score     int
	correct   int

	startedAt         time.Time
	questionStartedAt time.Time
}

// NewSession builds a session over the given questions. The question order
// is fixed for the lifetime of the session, restarts included.
func NewSession(questions []Question, cfg SessionConfig) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if cfg.TimeLimitSeconds <= 0 {
		cfg.TimeLimitSeconds = DefaultTimeLimit
	}
	if cfg.Policy == nil {
		cfg.Policy = AccuracySpeedScoring{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Session{
		questions: questions,
		policy:    cfg.Policy,
		clock:     cfg.Clock,
		timeLimit: cfg.TimeLimitSeconds,
		state:     StateNotStarted,
	}, nil
}

// Start moves the session onto its first question. Starting twice is an
// invalid transition.
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	s.beginRun()
	return nil
}

func (s *Session) beginRun() {
	s.state = StateInProgress
	s.index = 0
	s.answers = s.answers[:0]
	s.score = 0
	s.correct = 0
	s.startedAt = s.clock()
	s.beginQuestion()
}

func (s *Session) beginQuestion() {
	s.remaining = s.timeLimit
	s.questionStartedAt = s.clock()
}

// SubmitAnswer grades selected against the current question by string
// equality. A second submission for the same question is rejected.
func (s *Session) SubmitAnswer(selected string) (Answer, error) {
	if s.state == StateAwaitingNext {
		return Answer{}, ErrAlreadyAnswered
	}
	if s.state != StateInProgress {
		return Answer{}, ErrNotInProgress
	}
	spent := int(s.clock().Sub(s.questionStartedAt).Seconds())
	if spent > s.timeLimit {
		spent = s.timeLimit
	}
	if spent < 0 {
		spent = 0
	}
	q := s.questions[s.index]
	ans := Answer{
		QuestionID:       q.ID,
		Selected:         selected,
		Correct:          selected == q.Answer,
		TimeSpentSeconds: spent,
	}
	s.record(ans)
	return ans, nil
}

// TimeExpire records the timeout sentinel for the current question and
// parks the session awaiting Next. Outside in_progress it reports
// ErrNotInProgress.
func (s *Session) TimeExpire() (Answer, error) {
	if s.state != StateInProgress {
		return Answer{}, ErrNotInProgress
	}
	q := s.questions[s.index]
	ans := Answer{
		QuestionID:       q.ID,
		Selected:         TimeUpAnswer,
		Correct:          false,
		TimeSpentSeconds: s.timeLimit,
	}
	s.record(ans)
	return ans, nil
}

func (s *Session) record(ans Answer) {
	if ans.Correct {
		s.correct++
		s.score += s.policy.OnCorrect()
	}
	s.answers = append(s.answers, ans)
	s.state = StateAwaitingNext
}

// Tick counts the current question's timer down one second in cooperative
// UIs that drive time themselves. It reports whether the question just
// expired. Ticks outside in_progress are ignored.
func (s *Session) Tick() bool {
	if s.state != StateInProgress {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.TimeExpire()
		return true
	}
	return false
}

// Next advances past an answered question, completing the run after the
// last one.
func (s *Session) Next() error {
	if s.state != StateAwaitingNext {
		return ErrNotAwaitingNext
	}
	s.index++
	if s.index >= len(s.questions) {
		s.state = StateCompleted
		return nil
	}
	s.state = StateInProgress
	s.beginQuestion()
	return nil
}

// Restart discards all progress and replays the same questions in the same
// order. It is valid from any state.
func (s *Session) Restart() {
	s.beginRun()
}

func (s *Session) State() State { return s.state }

func (s *Session) CurrentIndex() int { return s.index }

func (s *Session) Remaining() int { return s.remaining }

func (s *Session) Questions() []Question { return s.questions }

// CurrentQuestion returns the question awaiting an answer, or nil once the
// run has completed or before it starts.
func (s *Session) CurrentQuestion() *Question {
	if s.state != StateInProgress && s.state != StateAwaitingNext {
		return nil
	}
	return &s.questions[s.index]
}

// Answers returns the recorded answers in question order.
func (s *Session) Answers() []Answer {
	return append([]Answer(nil), s.answers...)
}

func (s *Session) Score() int { return s.score }

// Summary finalizes the run's totals through the scoring policy. It is
// meaningful once the session is completed but safe to call at any point.
func (s *Session) Summary() Result {
	total := len(s.questions)
	spent := 0
	for _, a := range s.answers {
		spent += a.TimeSpentSeconds
	}
	accuracy := 0
	if total > 0 {
		accuracy = int(float64(s.correct) / float64(total) * 100)
	}
	return Result{
		Score:            s.policy.Final(s.correct, total, spent, s.score),
		TotalQuestions:   total,
		CorrectAnswers:   s.correct,
		AccuracyPercent:  accuracy,
		TimeSpentSeconds: spent,
		Answers:          s.Answers(),
	}
}
