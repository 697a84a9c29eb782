// Package stats contains session metrics and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/nback/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Metrics computes accuracy, hit rate and false-alarm rate for one modality.
// Rates with an empty denominator are zero.
func Metrics(c model.Counts) (accuracy, hitRate, falseAlarmRate float64) {
	if total := c.Total(); total > 0 {
		accuracy = float64(c.Correct()) / float64(total)
	}
	if matches := c.CorrectAccept + c.Miss; matches > 0 {
		hitRate = float64(c.CorrectAccept) / float64(matches)
	}
	if nonMatches := c.FalsePositive + c.CorrectReject; nonMatches > 0 {
		falseAlarmRate = float64(c.FalsePositive) / float64(nonMatches)
	}
	return accuracy, hitRate, falseAlarmRate
}

// CombinedAccuracy returns the share of correct outcomes across both modalities.
func CombinedAccuracy(t model.Tally) float64 {
	total := t.Position.Total() + t.Letter.Total()
	if total == 0 {
		return 0
	}
	return float64(t.Position.Correct()+t.Letter.Correct()) / float64(total)
}

// RollingAccuracy returns the moving-average correctness of one modality's
// evaluations, in trial order, as percentages.
func RollingAccuracy(evals []model.Evaluation, m model.Modality, window int) []float64 {
	values := make([]float64, 0, len(evals))
	for _, ev := range evals {
		if ev.Modality != m {
			continue
		}
		if ev.Outcome.Correct() {
			values = append(values, 100)
		} else {
			values = append(values, 0)
		}
	}
	return MovingAverage(values, window)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline on a fixed 0-100 scale.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round(v / 100 * float64(last)))
		if idx < 0 {
			idx = 0
		}
		if idx > last {
			idx = last
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
