package quiz

import "time"

// Category identifies what a question asks about. Each category maps to one
// field of the source memory card.
type Category string

const (
	CategoryPeople         Category = "people"
	CategoryLocation       Category = "location"
	CategoryYear           Category = "date_year"
	CategoryMonth          Category = "date_month"
	CategoryEmotion        Category = "emotion"
	CategoryPeopleCount    Category = "people_count"
	CategoryCaptionKeyword Category = "caption_keyword"
)

// Memory is the engine's read-only view of a memory card. Optional fields
// are zero values when absent; the synthesizer tolerates any combination.
type Memory struct {
	ID               string
	PhotoURL         string
	DateTaken        time.Time // zero when unknown
	Location         string
	Caption          string
	EmotionalContext string
	People           []string
}

// MemoryContext is a snapshot of the source memory taken at synthesis time,
// kept on the question so display and feedback are unaffected by later
// edits to the card.
type MemoryContext struct {
	PhotoURL  string   `json:"photo_url,omitempty"`
	DateTaken string   `json:"date_taken,omitempty"` // ISO date
	Location  string   `json:"location,omitempty"`
	People    []string `json:"people_involved,omitempty"`
	Caption   string   `json:"caption,omitempty"`
}

// Question is a single multiple-choice item derived from one memory card.
// Answer holds the exact text of the correct option; correctness checks are
// plain string equality against it.
type Question struct {
	ID       string        `json:"id"`
	MemoryID string        `json:"memory_id"`
	Category Category      `json:"category"`
	Prompt   string        `json:"question"`
	Options  []string      `json:"options"`
	Answer   string        `json:"correct_answer"`
	Context  MemoryContext `json:"memory_context"`
}
