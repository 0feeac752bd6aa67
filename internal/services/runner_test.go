package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"reminisce-backend/internal/quiz"
)

func runnerQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			ID:       fmt.Sprintf("quiz_mem_%d", i),
			MemoryID: "mem",
			Category: quiz.CategoryLocation,
			Prompt:   "Where was this photo taken?",
			Options:  []string{"At home", "At the park"},
			Answer:   "At home",
		}
	}
	return qs
}

func insertLiveQuiz(t *testing.T, r *QuizRunner, startedAt time.Time) *liveQuiz {
	t.Helper()
	session, err := quiz.NewSession(runnerQuestions(2), quiz.SessionConfig{
		TimeLimitSeconds: r.cfg.TimeLimitSeconds,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	lq := &liveQuiz{
		id:            uuid.New(),
		patientID:     uuid.New(),
		session:       session,
		src:           quiz.NewSource(),
		startedAt:     startedAt,
		questionStart: startedAt,
	}
	r.mu.Lock()
	r.sessions[lq.id] = lq
	r.mu.Unlock()
	return lq
}

func TestSnapshotCountdownFollowsClock(t *testing.T) {
	r := NewQuizRunner(nil, nil, nil, QuizRunnerConfig{TimeLimitSeconds: 30})
	base := time.Date(2026, time.February, 3, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	lq := insertLiveQuiz(t, r, base)

	state, err := r.Get(lq.id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if state.RemainingSeconds != 30 {
		t.Fatalf("remaining at start = %d, want 30", state.RemainingSeconds)
	}

	r.now = func() time.Time { return base.Add(20 * time.Second) }
	state, _ = r.Get(lq.id)
	if state.RemainingSeconds != 10 {
		t.Fatalf("remaining after 20s = %d, want 10", state.RemainingSeconds)
	}

	r.now = func() time.Time { return base.Add(45 * time.Second) }
	state, _ = r.Get(lq.id)
	if state.RemainingSeconds != 0 {
		t.Fatalf("remaining past the limit = %d, want 0", state.RemainingSeconds)
	}
}

func TestSnapshotCountdownZeroBetweenQuestions(t *testing.T) {
	r := NewQuizRunner(nil, nil, nil, QuizRunnerConfig{TimeLimitSeconds: 30})
	base := time.Date(2026, time.February, 3, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	lq := insertLiveQuiz(t, r, base)
	if _, err := lq.session.SubmitAnswer("At home"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	state, err := r.Get(lq.id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if state.RemainingSeconds != 0 {
		t.Fatalf("remaining while awaiting next = %d, want 0", state.RemainingSeconds)
	}
}

func TestParseScoringPolicy(t *testing.T) {
	tests := []struct {
		name    string
		want    quiz.ScoringPolicy
		wantErr bool
	}{
		{"", quiz.AccuracySpeedScoring{}, false},
		{"accuracy_speed", quiz.AccuracySpeedScoring{}, false},
		{"flat", quiz.FlatScoring{}, false},
		{"bonus_points", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseScoringPolicy(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseScoringPolicy(%q): expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseScoringPolicy(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScoringPolicy(%q) = %T, want %T", tt.name, got, tt.want)
		}
	}
}
