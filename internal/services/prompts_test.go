package services

import (
	"strings"
	"testing"
	"time"

	"reminisce-backend/internal/models"
)

func testPatient() *models.PatientProfile {
	return &models.PatientProfile{
		PreferredName:       "Rose",
		FamilyRelationships: []byte(`{"daughter":"Emma","son":"Jack"}`),
		PersonalityTraits:   []string{"warm", "curious"},
	}
}

func strPtr(s string) *string { return &s }

func TestBuildConversationPrompt(t *testing.T) {
	prompt := BuildConversationPrompt(testPatient(), nil, nil)

	for _, want := range []string{
		"helping Rose with Alzheimer's",
		"known for being warm, curious",
		"Emma is their daughter",
		"Jack is their son",
		"speak warmly and naturally",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildConversationPromptWithMemory(t *testing.T) {
	date := time.Date(1975, time.August, 9, 0, 0, 0, 0, time.UTC)
	selected := &models.MemoryCard{
		DateTaken:      &date,
		Location:       strPtr("Cape Cod"),
		Caption:        strPtr("Our summer by the sea."),
		PeopleInvolved: []string{"Emma", "Jack"},
	}
	others := []*models.MemoryCard{
		{Location: strPtr("At the farm")},
		{DateTaken: &date},
	}

	prompt := BuildConversationPrompt(testPatient(), others, selected)

	for _, want := range []string{
		"special memory from 1975-08-09 at Cape Cod",
		"Our summer by the sea.",
		"People who were there included: Emma, Jack.",
		"moments from At the farm, 1975-08-09",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildCheckInPrompt(t *testing.T) {
	checkIn := &models.EmotionalCheckIn{
		FocusAreas:    []string{"mood", "sleep"},
		CustomMessage: "She lost her cat last week.",
		UrgencyLevel:  models.UrgencyWatchClosely,
	}

	prompt := BuildCheckInPrompt(testPatient(), checkIn, nil)

	for _, want := range []string{
		"emotional check-in with Rose",
		"particularly attentive to their responses",
		"gently explore these areas: mood, sleep",
		`"She lost her cat last week."`,
		"how they're feeling today",
		"sleep quality",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildCheckInPromptDefaultTone(t *testing.T) {
	checkIn := &models.EmotionalCheckIn{FocusAreas: []string{"comfort"}, UrgencyLevel: models.UrgencyNormal}
	prompt := BuildCheckInPrompt(testPatient(), checkIn, nil)
	if !strings.Contains(prompt, "warm, caring tone") {
		t.Errorf("prompt missing default tone guidance:\n%s", prompt)
	}
}
