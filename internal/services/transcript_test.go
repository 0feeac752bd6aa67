package services

import (
	"strings"
	"testing"
)

func sampleTranscript() *RawTranscript {
	return &RawTranscript{
		ConversationID: "conv-1",
		Segments: []TranscriptSegment{
			{Role: "replica", Content: "Hello! How is your garden doing?", StartTime: 0, EndTime: 4.2},
			{Role: "user", Content: "Oh, wonderful. I remember when we planted roses back in 1962 with my husband.", StartTime: 4.5, EndTime: 12.8},
			{Role: "replica", Content: "That sounds beautiful. Were you happy there?", StartTime: 13.1, EndTime: 16.9},
			{Role: "user", Content: "So happy. Though I get a little confused about the dates.", StartTime: 17.2, EndTime: 22.4},
		},
	}
}

func TestAnalyzeTranscript(t *testing.T) {
	analysis := AnalyzeTranscript(sampleTranscript())

	if analysis.WordCount != 38 {
		t.Errorf("word count = %d, want 38", analysis.WordCount)
	}
	if analysis.DurationSeconds != 22 {
		t.Errorf("duration = %d, want 22", analysis.DurationSeconds)
	}
	if !strings.Contains(analysis.FullText, "[00:04] user:") {
		t.Errorf("full text missing timestamped speaker line:\n%s", analysis.FullText)
	}
}

func TestAnalyzeTranscriptTopics(t *testing.T) {
	analysis := AnalyzeTranscript(sampleTranscript())

	want := map[string]bool{"garden": false, "husband": false}
	for _, topic := range analysis.KeyTopics {
		if _, ok := want[topic]; ok {
			want[topic] = true
		}
	}
	for topic, found := range want {
		if !found {
			t.Errorf("topic %q not extracted, got %v", topic, analysis.KeyTopics)
		}
	}
}

func TestAnalyzeTranscriptMemoryReferences(t *testing.T) {
	analysis := AnalyzeTranscript(sampleTranscript())

	foundRemember, foundYear := false, false
	for _, ref := range analysis.MemoryReferences {
		lower := strings.ToLower(ref)
		if lower == "remember when" {
			foundRemember = true
		}
		if lower == "back in 1962" {
			foundYear = true
		}
	}
	if !foundRemember || !foundYear {
		t.Errorf("memory references = %v", analysis.MemoryReferences)
	}
}

func TestAnalyzeTranscriptEmotionCounts(t *testing.T) {
	analysis := AnalyzeTranscript(sampleTranscript())

	// "wonderful", "beautiful", "happy" x2 on the positive side; "confused"
	// on the negative side.
	if analysis.PositiveWords != 4 {
		t.Errorf("positive words = %d, want 4", analysis.PositiveWords)
	}
	if analysis.NegativeWords != 1 {
		t.Errorf("negative words = %d, want 1", analysis.NegativeWords)
	}
}

func TestAnalyzeTranscriptEmpty(t *testing.T) {
	if got := AnalyzeTranscript(nil); got.WordCount != 0 || got.FullText != "" {
		t.Errorf("nil transcript analysis = %+v", got)
	}
	if got := AnalyzeTranscript(&RawTranscript{}); got.WordCount != 0 {
		t.Errorf("empty transcript analysis = %+v", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{61.2, "01:01"},
		{754, "12:34"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
