package sentiment

// Summary counts reviews per label.
type Summary struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Add counts one label. Unknown labels are counted as neutral.
func (s *Summary) Add(l Label) {
	switch l {
	case Positive:
		s.Positive++
	case Negative:
		s.Negative++
	default:
		s.Neutral++
	}
}

// Total is the number of counted labels.
func (s Summary) Total() int {
	return s.Positive + s.Neutral + s.Negative
}

// Tally builds a Summary from a list of labels.
func Tally(labels []Label) Summary {
	var s Summary
	for _, l := range labels {
		s.Add(l)
	}
	return s
}

// AverageScore averages stored scores and rounds the same way single scores
// are rounded. An empty slice averages to zero.
func AverageScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return Round2(clamp(sum/float64(len(scores)), -1, 1))
}
