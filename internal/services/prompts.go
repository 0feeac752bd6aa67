package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"reminisce-backend/internal/models"
)

// DefaultGreeting opens every video conversation.
const DefaultGreeting = "Hey there! It's so good to see you again. Let's go through some lovely memories together."

var focusGuidance = map[string]string{
	"mood":       "Ask open-ended questions about how they're feeling today, what's on their mind, and if anything is bothering them.",
	"sleep":      "Gently inquire about their sleep quality, whether they slept well, and if they feel rested.",
	"energy":     "Ask about their energy levels, whether they feel tired or energetic, and how they're feeling physically.",
	"appetite":   "Check in about their interest in food, whether they've been eating well, and if they've enjoyed their meals.",
	"social":     "Ask about connections with family and friends, recent visits or calls, and how they're feeling about social interactions.",
	"activities": "Inquire about their daily activities, hobbies they've enjoyed, and things that have brought them joy recently.",
	"comfort":    "Gently ask about any physical discomfort, pain, or how they're feeling in their body.",
	"memory":     "Check in about their mental clarity, if they've been remembering things well, and how they're feeling cognitively.",
}

// BuildConversationPrompt assembles the avatar's conversational context for
// a general or memory-focused session.
func BuildConversationPrompt(patient *models.PatientProfile, memories []*models.MemoryCard, selected *models.MemoryCard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a gentle, cheerful, and familiar AI companion helping %s with Alzheimer's recall beautiful life memories. Offer emotional support and ask reflective, lighthearted questions. ", patient.PreferredName)

	writePersonality(&b, patient)
	writeFamily(&b, patient)

	if selected != nil {
		b.WriteString("Today's conversation should focus on a special memory")
		if selected.DateTaken != nil {
			fmt.Fprintf(&b, " from %s", selected.DateTaken.Format("2006-01-02"))
		}
		if selected.Location != nil && *selected.Location != "" {
			fmt.Fprintf(&b, " at %s", *selected.Location)
		}
		b.WriteString(". ")
		if selected.Caption != nil && *selected.Caption != "" {
			b.WriteString(*selected.Caption)
		} else {
			b.WriteString("This was a meaningful moment in their life.")
		}
		if len(selected.PeopleInvolved) > 0 {
			fmt.Fprintf(&b, " People who were there included: %s.", strings.Join(selected.PeopleInvolved, ", "))
		}
	}

	if hints := memoryHints(memories, 3); len(hints) > 0 {
		fmt.Fprintf(&b, " Other cherished memories include moments from %s.", strings.Join(hints, ", "))
	}

	b.WriteString(" Please speak warmly and naturally, as if you're a caring family member who knows them well. Ask gentle questions about their day, their feelings, and help them recall happy memories. Be patient, encouraging, and emotionally supportive.")
	return b.String()
}

// BuildCheckInPrompt assembles the conversational context for an emotional
// check-in session configured by the caregiver.
func BuildCheckInPrompt(patient *models.PatientProfile, checkIn *models.EmotionalCheckIn, memories []*models.MemoryCard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a gentle, cheerful, and familiar AI companion conducting an emotional check-in with %s, who has Alzheimer's. Offer emotional support and ask reflective, lighthearted questions. ", patient.PreferredName)

	writePersonality(&b, patient)
	writeFamily(&b, patient)

	switch checkIn.UrgencyLevel {
	case models.UrgencyGentle:
		b.WriteString("Please be extra patient and sensitive in your approach. Take your time with questions and allow for pauses. ")
	case models.UrgencyWatchClosely:
		b.WriteString("Please be particularly attentive to their responses and emotional state. Watch for any signs of distress or concerning changes. ")
	default:
		b.WriteString("Maintain a warm, caring tone throughout the conversation. ")
	}

	if len(checkIn.FocusAreas) > 0 {
		fmt.Fprintf(&b, "Today's check-in should gently explore these areas: %s. ", strings.Join(checkIn.FocusAreas, ", "))
	}

	if checkIn.CustomMessage != "" {
		fmt.Fprintf(&b, "The caregiver has shared this important context: %q. Please weave this information naturally into your conversation. ", checkIn.CustomMessage)
	}

	var guidance []string
	for _, area := range checkIn.FocusAreas {
		if g, ok := focusGuidance[area]; ok {
			guidance = append(guidance, g)
		}
	}
	if len(guidance) > 0 {
		fmt.Fprintf(&b, "Conversation guidance: %s ", strings.Join(guidance, " "))
	}

	if hints := memoryHints(memories, 2); len(hints) > 0 {
		fmt.Fprintf(&b, "You can reference their cherished memories from %s to help them feel comfortable and connected. ", strings.Join(hints, " and "))
	}

	b.WriteString("Remember to be emotionally supportive, non-judgmental, and create a safe space for them to share their feelings. Use open-ended questions, validate their emotions, and offer gentle encouragement. If they seem reluctant to talk about something, don't push - simply let them know you're there for them.")
	return b.String()
}

func writePersonality(b *strings.Builder, patient *models.PatientProfile) {
	if len(patient.PersonalityTraits) > 0 {
		fmt.Fprintf(b, "They are known for being %s. ", strings.Join(patient.PersonalityTraits, ", "))
	}
}

// writeFamily renders the family_relationships object ("sister": "Mary")
// as prose. Keys are sorted so output is stable.
func writeFamily(b *strings.Builder, patient *models.PatientProfile) {
	if len(patient.FamilyRelationships) == 0 {
		return
	}
	var relations map[string]string
	if err := json.Unmarshal(patient.FamilyRelationships, &relations); err != nil || len(relations) == 0 {
		return
	}
	keys := make([]string, 0, len(relations))
	for k := range relations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, relation := range keys {
		parts = append(parts, fmt.Sprintf("%s is their %s", relations[relation], relation))
	}
	fmt.Fprintf(b, "Important family members include: %s. ", strings.Join(parts, ", "))
}

// memoryHints returns a short label for each of the first n memory cards,
// preferring location over date.
func memoryHints(memories []*models.MemoryCard, n int) []string {
	var hints []string
	for _, m := range memories {
		if len(hints) == n {
			break
		}
		switch {
		case m.Location != nil && *m.Location != "":
			hints = append(hints, *m.Location)
		case m.DateTaken != nil:
			hints = append(hints, m.DateTaken.Format("2006-01-02"))
		}
	}
	return hints
}
