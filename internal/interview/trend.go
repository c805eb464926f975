package interview

// trendThreshold is how far the second-half mean must move from the
// first-half mean before the trend stops reading as CONSISTENT.
const trendThreshold = 10.0

// ClassifyTrend compares the first and second half of the scores, taken
// in presentation order, split at floor(n/2). Fewer than two scores is
// always CONSISTENT.
func ClassifyTrend(scores []float64) PerformanceTrend {
	if len(scores) < 2 {
		return TrendConsistent
	}

	mid := len(scores) / 2
	firstMean := mean(scores[:mid])
	secondMean := mean(scores[mid:])

	switch {
	case secondMean > firstMean+trendThreshold:
		return TrendImproving
	case secondMean < firstMean-trendThreshold:
		return TrendDeclining
	default:
		return TrendConsistent
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
