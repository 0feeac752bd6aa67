package quiz

import "math"

// ComputeScore blends accuracy (70% weight) with a speed bonus that decays
// with the average seconds spent per question. Perfect runs answered
// instantly score 100. The bonus only applies once at least one answer is
// correct, so an all-wrong run scores zero no matter how fast it went.
func ComputeScore(correct, total, timeSpentSeconds int) int {
	if total == 0 || correct == 0 {
		return 0
	}
	accuracy := float64(correct) / float64(total) * 70
	speed := math.Max(0, 30-float64(timeSpentSeconds)/float64(total))
	return int(math.Round(accuracy + speed))
}

// ScoringPolicy decides how a quiz run accumulates and finalizes its score.
type ScoringPolicy interface {
	// OnCorrect returns the points awarded immediately for a correct answer.
	OnCorrect() int
	// Final returns the score reported at completion given the run totals
	// and whatever running score OnCorrect accumulated.
	Final(correct, total, timeSpentSeconds, running int) int
}

// FlatScoring awards a fixed 10 points per correct answer as the run goes.
type FlatScoring struct{}

func (FlatScoring) OnCorrect() int { return 10 }

func (FlatScoring) Final(_, _, _, running int) int { return running }

// AccuracySpeedScoring defers everything to ComputeScore at the end of the
// run. It is the default policy.
type AccuracySpeedScoring struct{}

func (AccuracySpeedScoring) OnCorrect() int { return 0 }

func (AccuracySpeedScoring) Final(correct, total, timeSpentSeconds, _ int) int {
	return ComputeScore(correct, total, timeSpentSeconds)
}
