package quiz

import (
	"fmt"
	"strings"
)

var encouragements = []string{
	"Wonderful! You remembered that perfectly!",
	"That's exactly right! Your memory is sharp!",
	"Beautiful! You got it!",
	"Yes! That's a precious memory you've kept!",
	"Perfect! I can see this moment means a lot to you!",
}

var corrections = []string{
	"That's okay, let me help you remember.",
	"No worries, these things happen.",
	"Let's think about this together.",
	"That's alright, memories can be tricky sometimes.",
}

// GenerateFeedback composes the companion avatar's spoken reaction to one
// answered question. Correct answers get an encouragement enriched with
// details from the memory; incorrect answers get a gentle correction that
// states the right answer for the question's category.
func GenerateFeedback(correct bool, q Question, selected string, src Source) string {
	if src == nil {
		src = NewSource()
	}
	if correct {
		return correctFeedback(q, src)
	}
	return incorrectFeedback(q, selected, src)
}

func correctFeedback(q Question, src Source) string {
	var b strings.Builder
	b.WriteString(pick(encouragements, src))
	if q.Context.Location != "" {
		fmt.Fprintf(&b, " That was such a lovely time at %s.", q.Context.Location)
	}
	if len(q.Context.People) > 0 {
		fmt.Fprintf(&b, " It's wonderful that you remember being there with %s.", joinNames(q.Context.People))
	}
	b.WriteString(" These memories are so precious, aren't they?")
	return b.String()
}

func incorrectFeedback(q Question, selected string, src Source) string {
	var b strings.Builder
	if selected == TimeUpAnswer {
		b.WriteString("Take all the time you need, there's no rush at all.")
	} else {
		b.WriteString(pick(corrections, src))
	}

	switch q.Category {
	case CategoryPeople:
		fmt.Fprintf(&b, " In this photo, it was %s who was there with you", joinNames(q.Context.People))
	case CategoryLocation:
		fmt.Fprintf(&b, " This photo was actually taken %s", lowerFirst(q.Answer))
	case CategoryYear:
		fmt.Fprintf(&b, " This photo was taken in %s", q.Answer)
	case CategoryMonth:
		fmt.Fprintf(&b, " This was in %s", q.Answer)
	case CategoryEmotion:
		fmt.Fprintf(&b, " The mood of this moment was %s", strings.ToLower(q.Answer))
	case CategoryPeopleCount:
		fmt.Fprintf(&b, " There were %s people with you in this photo", q.Answer)
	case CategoryCaptionKeyword:
		fmt.Fprintf(&b, " This memory was about a %s", q.Answer)
	default:
		fmt.Fprintf(&b, " The answer was %s", q.Answer)
	}

	b.WriteString(". But don't worry - remembering can be challenging sometimes, and that's perfectly normal. What matters is that we're sharing these beautiful moments together!")
	return b.String()
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "your loved ones"
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// lowerFirst softens archetype answers like "At the park" so they read
// naturally mid-sentence.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
