package models

// Focus areas a caregiver can steer an emotional check-in toward.
var CheckInFocusAreas = []string{
	"mood", "sleep", "energy", "appetite",
	"social", "activities", "comfort", "memory",
}

type UrgencyLevel string

const (
	UrgencyNormal       UrgencyLevel = "normal"
	UrgencyGentle       UrgencyLevel = "gentle"
	UrgencyWatchClosely UrgencyLevel = "watch_closely"
)

// EmotionalCheckIn configures a check-in conversation: which areas the
// avatar should ask about and how carefully it should tread.
type EmotionalCheckIn struct {
	FocusAreas    []string     `json:"focus_areas"`
	CustomMessage string       `json:"custom_message,omitempty"`
	UrgencyLevel  UrgencyLevel `json:"urgency_level"`
}

func (c *EmotionalCheckIn) Validate() error {
	for _, area := range c.FocusAreas {
		if !validFocusArea(area) {
			return ErrValidation("unknown focus area: " + area)
		}
	}
	switch c.UrgencyLevel {
	case UrgencyNormal, UrgencyGentle, UrgencyWatchClosely:
	case "":
		c.UrgencyLevel = UrgencyNormal
	default:
		return ErrValidation("urgency_level must be normal, gentle or watch_closely")
	}
	return nil
}

func validFocusArea(area string) bool {
	for _, a := range CheckInFocusAreas {
		if a == area {
			return true
		}
	}
	return false
}
