package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var topicKeywords = []string{
	"family", "children", "grandchildren", "spouse", "husband", "wife",
	"birthday", "anniversary", "holiday", "christmas", "thanksgiving",
	"vacation", "travel", "home", "garden", "cooking", "recipe",
	"work", "career", "retirement", "school", "education",
	"health", "doctor", "medicine", "hospital",
	"friends", "neighbors", "community", "church",
	"mood", "sleep", "energy", "appetite", "social", "activities", "comfort", "memory",
}

var memoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)remember when`),
	regexp.MustCompile(`(?i)back in \d{4}`),
	regexp.MustCompile(`(?i)years ago`),
	regexp.MustCompile(`(?i)when I was`),
	regexp.MustCompile(`(?i)used to`),
	regexp.MustCompile(`(?i)in the old days`),
}

var positiveWords = []string{"happy", "joy", "love", "wonderful", "beautiful", "amazing", "grateful", "blessed"}
var negativeWords = []string{"sad", "worried", "afraid", "lonely", "confused", "frustrated", "angry", "upset"}

// TranscriptAnalysis is the processed form of a raw conversation
// transcript.
type TranscriptAnalysis struct {
	FullText         string
	WordCount        int
	DurationSeconds  int
	KeyTopics        []string
	MemoryReferences []string
	PositiveWords    int
	NegativeWords    int
}

// AnalyzeTranscript flattens the raw segments into a readable timestamped
// text and extracts topics, reminiscence phrases and a rough emotional
// word count.
func AnalyzeTranscript(raw *RawTranscript) *TranscriptAnalysis {
	if raw == nil || len(raw.Segments) == 0 {
		return &TranscriptAnalysis{}
	}

	var lines []string
	wordCount := 0
	var maxEnd float64
	for _, seg := range raw.Segments {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", formatTimestamp(seg.StartTime), seg.Role, seg.Content))
		if seg.Content != "" {
			wordCount += len(strings.Fields(seg.Content))
		}
		if seg.EndTime > maxEnd {
			maxEnd = seg.EndTime
		}
	}
	fullText := strings.Join(lines, "\n")
	lower := strings.ToLower(fullText)

	return &TranscriptAnalysis{
		FullText:         fullText,
		WordCount:        wordCount,
		DurationSeconds:  int(math.Round(maxEnd)),
		KeyTopics:        extractKeyTopics(lower),
		MemoryReferences: extractMemoryReferences(fullText),
		PositiveWords:    countWordHits(lower, positiveWords),
		NegativeWords:    countWordHits(lower, negativeWords),
	}
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func extractKeyTopics(lowerText string) []string {
	var topics []string
	for _, kw := range topicKeywords {
		if strings.Contains(lowerText, kw) {
			topics = append(topics, kw)
		}
	}
	return topics
}

// extractMemoryReferences collects phrases that signal the patient
// reminiscing, like "remember when" or "back in 1962".
func extractMemoryReferences(text string) []string {
	var refs []string
	for _, pattern := range memoryPatterns {
		refs = append(refs, pattern.FindAllString(text, -1)...)
	}
	return refs
}

func countWordHits(lowerText string, words []string) int {
	total := 0
	for _, w := range words {
		total += strings.Count(lowerText, w)
	}
	return total
}
