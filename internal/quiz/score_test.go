package quiz

import "testing"

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name      string
		correct   int
		total     int
		timeSpent int
		want      int
	}{
		{"perfect and instant", 10, 10, 0, 100},
		{"all wrong instant", 0, 10, 0, 0},
		{"all wrong moderate pace", 0, 10, 50, 0},
		{"all wrong slow", 0, 10, 100, 0},
		{"half right at moderate pace", 5, 10, 100, 55},
		{"slow run loses the whole bonus", 10, 10, 600, 70},
		{"zero questions", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeScore(tt.correct, tt.total, tt.timeSpent); got != tt.want {
				t.Errorf("ComputeScore(%d, %d, %d) = %d, want %d",
					tt.correct, tt.total, tt.timeSpent, got, tt.want)
			}
		})
	}
}

func TestFlatScoring(t *testing.T) {
	p := FlatScoring{}
	if p.OnCorrect() != 10 {
		t.Fatalf("OnCorrect = %d", p.OnCorrect())
	}
	if got := p.Final(7, 10, 200, 70); got != 70 {
		t.Fatalf("Final = %d", got)
	}
}

func TestAccuracySpeedScoring(t *testing.T) {
	p := AccuracySpeedScoring{}
	if p.OnCorrect() != 0 {
		t.Fatalf("OnCorrect = %d", p.OnCorrect())
	}
	if got := p.Final(5, 10, 100, 0); got != 55 {
		t.Fatalf("Final = %d", got)
	}
	if got := p.Final(0, 0, 0, 0); got != 0 {
		t.Fatalf("Final with no questions = %d", got)
	}
}
