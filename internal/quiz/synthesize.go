package quiz

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	maxQuestionsPerMemory = 4
	maxOptions            = 4
	minOptions            = 2
)

// Distractor pools. Plausible but verifiably wrong answers are drawn from
// these fixed lists, never from other patients' data.
var commonFirstNames = []string{
	"Sarah", "Michael", "Emma", "David", "Lisa", "John", "Mary", "Robert",
}

var locationArchetypes = []string{
	"At home", "In the garden", "At the park", "Downtown",
	"At the beach", "In the kitchen", "At church", "At a restaurant",
}

// Closed emotional-context vocabulary with display labels.
var emotionLabels = map[string]string{
	"joyful":      "Joyful & Happy",
	"peaceful":    "Peaceful & Calm",
	"celebratory": "Celebratory & Festive",
	"nostalgic":   "Nostalgic & Reflective",
	"loving":      "Loving & Tender",
	"proud":       "Proud & Accomplished",
	"adventurous": "Adventurous & Exciting",
	"cozy":        "Cozy & Intimate",
}

var emotionVocabulary = []string{
	"joyful", "peaceful", "celebratory", "nostalgic",
	"loving", "proud", "adventurous", "cozy",
}

var captionKeywords = []string{
	"birthday", "anniversary", "wedding", "graduation", "vacation",
	"holiday", "christmas", "thanksgiving", "celebration", "party",
	"reunion", "picnic", "gathering", "dinner", "lunch",
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Synthesizer turns a single memory card into zero or more multiple-choice
// questions. It is stateless apart from its random source and clock.
type Synthesizer struct {
	src Source
	now func() time.Time
}

func NewSynthesizer(src Source) *Synthesizer {
	if src == nil {
		src = NewSource()
	}
	return &Synthesizer{src: src, now: time.Now}
}

// Synthesize evaluates every question category against the memory and emits
// a question for each one whose required field is present, in a fixed
// category order, capped at maxQuestionsPerMemory. A memory with no usable
// fields yields an empty slice, never an error.
func (s *Synthesizer) Synthesize(m Memory) []Question {
	ctx := snapshot(m)
	var out []Question

	add := func(cat Category, prompt, correct string, distractors []string) {
		if len(out) >= maxQuestionsPerMemory {
			return
		}
		options, ok := buildOptions(correct, distractors, s.src)
		if !ok {
			return
		}
		out = append(out, Question{
			ID:       fmt.Sprintf("quiz_%s_%s_%d", m.ID, cat, len(out)+1),
			MemoryID: m.ID,
			Category: cat,
			Prompt:   prompt,
			Options:  options,
			Answer:   correct,
			Context:  ctx,
		})
	}

	if len(m.People) > 0 {
		correct := strings.Join(m.People, ", ")
		add(CategoryPeople, "Who can you see in this photo?", correct, s.peopleDistractors(m.People))
	}
	if m.Location != "" {
		add(CategoryLocation, "Where was this photo taken?", m.Location, locationDistractors(m.Location))
	}
	if !m.DateTaken.IsZero() {
		year := m.DateTaken.Year()
		add(CategoryYear, "What year was this photo taken?", strconv.Itoa(year), s.yearDistractors(year))
		month := m.DateTaken.Month().String()
		add(CategoryMonth, "What month was this photo taken?", month, s.monthDistractors(month))
	}
	if m.EmotionalContext != "" {
		correct := emotionLabel(m.EmotionalContext)
		add(CategoryEmotion, "What was the mood of this moment?", correct, s.emotionDistractors(correct))
	}
	if len(m.People) > 1 {
		count := len(m.People)
		add(CategoryPeopleCount, "How many people were with you in this photo?", strconv.Itoa(count), countDistractors(count))
	}
	if kw := matchCaptionKeyword(m.Caption); kw != "" {
		add(CategoryCaptionKeyword, "What special occasion does this memory mention?", kw, s.keywordDistractors(kw))
	}

	return out
}

func snapshot(m Memory) MemoryContext {
	ctx := MemoryContext{
		PhotoURL: m.PhotoURL,
		Location: m.Location,
		Caption:  m.Caption,
	}
	if !m.DateTaken.IsZero() {
		ctx.DateTaken = m.DateTaken.Format("2006-01-02")
	}
	if len(m.People) > 0 {
		ctx.People = append([]string(nil), m.People...)
	}
	return ctx
}

// buildOptions places the correct answer first, appends distinct distractors
// up to maxOptions, then shuffles the list. Questions that cannot reach
// minOptions distinct entries are dropped by the caller.
func buildOptions(correct string, distractors []string, src Source) ([]string, bool) {
	options := []string{correct}
	for _, d := range distractors {
		if len(options) >= maxOptions {
			break
		}
		if d == "" || contains(options, d) {
			continue
		}
		options = append(options, d)
	}
	if len(options) < minOptions {
		return nil, false
	}
	shuffle(options, src)
	return options, true
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}

func (s *Synthesizer) peopleDistractors(people []string) []string {
	pool := make([]string, 0, len(commonFirstNames))
	for _, name := range commonFirstNames {
		wrong := true
		for _, p := range people {
			if strings.EqualFold(name, p) {
				wrong = false
				break
			}
		}
		if wrong {
			pool = append(pool, name)
		}
	}
	shuffle(pool, s.src)

	var out []string
	for i := 0; i+1 < len(pool) && len(out) < 2; i += 2 {
		out = append(out, pool[i]+", "+pool[i+1])
	}
	out = append(out, "Family friends")
	return out
}

// locationDistractors keeps however many archetypes survive the
// case-insensitive exclusion of the correct answer; it never pads with
// duplicates.
func locationDistractors(correct string) []string {
	var out []string
	for _, loc := range locationArchetypes {
		if !strings.EqualFold(loc, correct) {
			out = append(out, loc)
		}
		if len(out) == 3 {
			break
		}
	}
	return out
}

// yearDistractors offsets the correct year by ±1..3, keeping only years in
// (1900, current year].
func (s *Synthesizer) yearDistractors(year int) []string {
	currentYear := s.now().Year()
	var out []string
	for _, off := range []int{-1, 1, -2, 2, -3, 3} {
		c := year + off
		if c <= 1900 || c > currentYear {
			continue
		}
		out = append(out, strconv.Itoa(c))
		if len(out) == 3 {
			break
		}
	}
	return out
}

func (s *Synthesizer) monthDistractors(correct string) []string {
	var others []string
	for _, m := range monthNames {
		if m != correct {
			others = append(others, m)
		}
	}
	shuffle(others, s.src)
	return others[:3]
}

func emotionLabel(emotion string) string {
	if label, ok := emotionLabels[strings.ToLower(emotion)]; ok {
		return label
	}
	return emotion
}

func (s *Synthesizer) emotionDistractors(correctLabel string) []string {
	var others []string
	for _, e := range emotionVocabulary {
		if label := emotionLabels[e]; label != correctLabel {
			others = append(others, label)
		}
	}
	shuffle(others, s.src)
	if len(others) > 3 {
		others = others[:3]
	}
	return others
}

func countDistractors(count int) []string {
	var out []string
	for _, off := range []int{-1, 1, -2, 2} {
		c := count + off
		if c <= 0 || c == count {
			continue
		}
		out = append(out, strconv.Itoa(c))
		if len(out) == 3 {
			break
		}
	}
	return out
}

// matchCaptionKeyword returns the first recognized occasion keyword in the
// caption, or "" when the caption is too short or mentions none.
func matchCaptionKeyword(caption string) string {
	if len(strings.Fields(caption)) <= 5 {
		return ""
	}
	lower := strings.ToLower(caption)
	for _, kw := range captionKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

func (s *Synthesizer) keywordDistractors(correct string) []string {
	var others []string
	for _, kw := range captionKeywords {
		if kw != correct {
			others = append(others, kw)
		}
	}
	shuffle(others, s.src)
	return others[:3]
}
