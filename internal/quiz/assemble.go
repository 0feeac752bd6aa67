package quiz

// DefaultMaxQuestions caps a single quiz run.
const DefaultMaxQuestions = 10

// Assembler builds a bounded, shuffled quiz out of a patient's memory cards.
type Assembler struct {
	syn *Synthesizer
	src Source
	max int
}

func NewAssembler(src Source, max int) *Assembler {
	if src == nil {
		src = NewSource()
	}
	if max <= 0 {
		max = DefaultMaxQuestions
	}
	return &Assembler{syn: NewSynthesizer(src), src: src, max: max}
}

// BuildQuiz synthesizes questions for every memory, drops duplicate IDs,
// shuffles the combined pool and truncates it to the assembler's cap. No
// memories, or memories with no usable fields, yield an empty quiz.
func (a *Assembler) BuildQuiz(memories []Memory) []Question {
	seen := make(map[string]struct{})
	var pool []Question
	for _, m := range memories {
		for _, q := range a.syn.Synthesize(m) {
			if _, dup := seen[q.ID]; dup {
				continue
			}
			seen[q.ID] = struct{}{}
			pool = append(pool, q)
		}
	}
	shuffle(pool, a.src)
	if len(pool) > a.max {
		pool = pool[:a.max]
	}
	return pool
}
