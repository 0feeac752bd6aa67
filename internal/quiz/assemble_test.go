package quiz

import (
	"fmt"
	"testing"
	"time"
)

func TestBuildQuizEmptyInput(t *testing.T) {
	a := NewAssembler(fixedSource(0.5), 0)
	if got := a.BuildQuiz(nil); len(got) != 0 {
		t.Fatalf("expected empty quiz, got %d questions", len(got))
	}
	if got := a.BuildQuiz([]Memory{{ID: "bare"}}); len(got) != 0 {
		t.Fatalf("expected empty quiz from unusable memory, got %d questions", len(got))
	}
}

func TestBuildQuizCapsAtMax(t *testing.T) {
	a := NewAssembler(fixedSource(0.1, 0.6, 0.3, 0.9), 0)

	var memories []Memory
	for i := 0; i < 50; i++ {
		memories = append(memories, Memory{
			ID:        fmt.Sprintf("mem%d", i),
			Location:  "At the lake house",
			DateTaken: time.Date(1980+i%30, time.March, 3, 0, 0, 0, 0, time.UTC),
			People:    []string{"Anna", "Tom"},
		})
	}

	quiz := a.BuildQuiz(memories)
	if len(quiz) != DefaultMaxQuestions {
		t.Fatalf("expected %d questions, got %d", DefaultMaxQuestions, len(quiz))
	}
	seen := make(map[string]bool)
	for _, q := range quiz {
		if seen[q.ID] {
			t.Errorf("duplicate question id %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestBuildQuizBelowCapKeepsAll(t *testing.T) {
	a := NewAssembler(fixedSource(0.4), 0)
	quiz := a.BuildQuiz([]Memory{{ID: "mem1", Location: "At the beach house"}})
	if len(quiz) != 1 {
		t.Fatalf("expected 1 question, got %d", len(quiz))
	}
}
