package quiz

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func fullMemory() Memory {
	return Memory{
		ID:               "mem1",
		PhotoURL:         "https://example.com/p.jpg",
		DateTaken:        time.Date(1987, time.June, 14, 0, 0, 0, 0, time.UTC),
		Location:         "At the lake house",
		Caption:          "Our big family reunion picnic by the water that summer",
		EmotionalContext: "joyful",
		People:           []string{"Anna", "Tom"},
	}
}

func TestSynthesizeFullMemory(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.1, 0.5, 0.9))
	questions := s.Synthesize(fullMemory())

	if len(questions) != maxQuestionsPerMemory {
		t.Fatalf("expected %d questions, got %d", maxQuestionsPerMemory, len(questions))
	}

	wantOrder := []Category{CategoryPeople, CategoryLocation, CategoryYear, CategoryMonth}
	for i, q := range questions {
		if q.Category != wantOrder[i] {
			t.Errorf("question %d: category = %s, want %s", i, q.Category, wantOrder[i])
		}
		if q.MemoryID != "mem1" {
			t.Errorf("question %d: memory id = %s", i, q.MemoryID)
		}
	}
}

func TestSynthesizeOptionsAreWellFormed(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.3, 0.7, 0.2, 0.8))
	for _, q := range s.Synthesize(fullMemory()) {
		if len(q.Options) < minOptions || len(q.Options) > maxOptions {
			t.Errorf("%s: %d options", q.ID, len(q.Options))
		}
		found := 0
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			if seen[opt] {
				t.Errorf("%s: duplicate option %q", q.ID, opt)
			}
			seen[opt] = true
			if opt == q.Answer {
				found++
			}
		}
		if found != 1 {
			t.Errorf("%s: answer %q appears %d times in options", q.ID, q.Answer, found)
		}
	}
}

func TestSynthesizeEmptyMemory(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.5))
	if got := s.Synthesize(Memory{ID: "bare"}); len(got) != 0 {
		t.Fatalf("expected no questions, got %d", len(got))
	}
}

func TestSynthesizeSingleField(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.4))
	questions := s.Synthesize(Memory{ID: "loc", Location: "At the beach"})
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Category != CategoryLocation {
		t.Fatalf("category = %s", q.Category)
	}
	if q.Answer != "At the beach" {
		t.Fatalf("answer = %q", q.Answer)
	}
	for _, opt := range q.Options {
		if opt != q.Answer && strings.EqualFold(opt, q.Answer) {
			t.Errorf("distractor %q collides with answer", opt)
		}
	}
}

func TestSynthesizeDateOnlyMemory(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.4))
	questions := s.Synthesize(Memory{
		ID:        "dated",
		DateTaken: time.Date(1962, time.March, 8, 0, 0, 0, 0, time.UTC),
	})
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Category != CategoryYear || questions[1].Category != CategoryMonth {
		t.Fatalf("categories = %s, %s", questions[0].Category, questions[1].Category)
	}
	if questions[0].Answer != "1962" {
		t.Fatalf("year answer = %q", questions[0].Answer)
	}
	if questions[1].Answer != "March" {
		t.Fatalf("month answer = %q", questions[1].Answer)
	}
}

func TestSynthesizeEmotionLabel(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.2))
	questions := s.Synthesize(Memory{ID: "emo", EmotionalContext: "Nostalgic"})
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if got := questions[0].Answer; got != "Nostalgic & Reflective" {
		t.Fatalf("answer = %q", got)
	}
}

func TestSynthesizeCaptionKeyword(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.6))

	short := s.Synthesize(Memory{ID: "c1", Caption: "birthday party photo"})
	if len(short) != 0 {
		t.Fatalf("short caption should yield no questions, got %d", len(short))
	}

	long := s.Synthesize(Memory{ID: "c2", Caption: "Grandma blowing out candles at her ninetieth birthday party"})
	if len(long) != 1 {
		t.Fatalf("expected 1 question, got %d", len(long))
	}
	if got := long[0].Answer; got != "birthday" {
		t.Fatalf("answer = %q", got)
	}
}

func TestSynthesizePeopleCountNeedsTwo(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.3))
	for _, q := range s.Synthesize(Memory{ID: "solo", People: []string{"Anna"}}) {
		if q.Category == CategoryPeopleCount {
			t.Fatal("people_count question generated for a single person")
		}
	}
}

func TestYearDistractorsStayInRange(t *testing.T) {
	s := NewSynthesizer(fixedSource(0.5))
	s.now = func() time.Time { return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) }

	for _, year := range []int{1901, 2026} {
		for _, d := range s.yearDistractors(year) {
			n, err := strconv.Atoi(d)
			if err != nil {
				t.Fatalf("distractor %q is not a year", d)
			}
			if n <= 1900 || n > 2026 {
				t.Errorf("distractor %d out of range for year %d", n, year)
			}
		}
	}
}

func TestSnapshotFormatsDate(t *testing.T) {
	ctx := snapshot(fullMemory())
	if ctx.DateTaken != "1987-06-14" {
		t.Fatalf("date = %q", ctx.DateTaken)
	}
	if ctx.Location != "At the lake house" {
		t.Fatalf("location = %q", ctx.Location)
	}
	if len(ctx.People) != 2 {
		t.Fatalf("people = %v", ctx.People)
	}
}
