package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/nback/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMetrics(t *testing.T) {
	acc, hit, fa := Metrics(model.Counts{CorrectAccept: 3, Miss: 1, FalsePositive: 2, CorrectReject: 6})
	if !almostEqual(acc, 0.75) || !almostEqual(hit, 0.75) || !almostEqual(fa, 0.25) {
		t.Fatalf("unexpected metrics: acc=%v hit=%v fa=%v", acc, hit, fa)
	}
	acc, hit, fa = Metrics(model.Counts{})
	if acc != 0 || hit != 0 || fa != 0 {
		t.Fatalf("expected zero metrics for empty counts")
	}
}

func TestCombinedAccuracy(t *testing.T) {
	tally := model.Tally{
		Position: model.Counts{CorrectAccept: 1, Miss: 1},
		Letter:   model.Counts{CorrectReject: 2},
	}
	if got := CombinedAccuracy(tally); !almostEqual(got, 0.75) {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{0, 100, 100, 0}, 2)
	want := []float64{0, 50, 100, 50}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Fatalf("index %d: want %v, got %v", i, want[i], got[i])
		}
	}
	same := MovingAverage([]float64{1, 2}, 1)
	if same[0] != 1 || same[1] != 2 {
		t.Fatalf("window 1 should copy values: %v", same)
	}
}

func TestRollingAccuracyFiltersModality(t *testing.T) {
	evals := []model.Evaluation{
		{Trial: 2, Modality: model.ModalityPosition, Outcome: model.OutcomeCorrectAccept},
		{Trial: 2, Modality: model.ModalityLetter, Outcome: model.OutcomeMiss},
		{Trial: 3, Modality: model.ModalityPosition, Outcome: model.OutcomeFalsePositive},
		{Trial: 3, Modality: model.ModalityLetter, Outcome: model.OutcomeCorrectReject},
	}
	pos := RollingAccuracy(evals, model.ModalityPosition, 1)
	if len(pos) != 2 || pos[0] != 100 || pos[1] != 0 {
		t.Fatalf("unexpected position series: %v", pos)
	}
}

func TestSparklineScale(t *testing.T) {
	if got := Sparkline([]float64{0, 100, 50}); got != " @+" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderSummary(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	summary := model.Summary{
		N:         2,
		Trials:    6,
		Evaluated: 4,
		Completed: true,
		Tally: model.Tally{
			Position: model.Counts{CorrectAccept: 1, Miss: 3},
			Letter:   model.Counts{CorrectReject: 4},
		},
		StartedAt: start,
		EndedAt:   start.Add(18 * time.Second),
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, summary); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Dual 2-back, completed", "Evaluated trials: 4 of 6", "Duration: 18s", "position", "25.0%", "100.0%", "Combined accuracy: 62.5%"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("summary missing %q:\n%s", needle, out)
		}
	}
}

func TestRenderSummaryStoppedEarly(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, model.Summary{N: 3, Trials: 20}); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "stopped") || !strings.Contains(buf.String(), "No trials were scored.") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestSummaryRowsIncludeRates(t *testing.T) {
	summary := model.Summary{
		N:         2,
		Trials:    8,
		Evaluated: 6,
		Tally: model.Tally{
			Position: model.Counts{CorrectAccept: 1, Miss: 1, FalsePositive: 1, CorrectReject: 3},
			Letter:   model.Counts{CorrectAccept: 2, CorrectReject: 4},
		},
	}
	headers, rows := SummaryRows(summary)
	if headers[7] != "Hit rate" || headers[8] != "FA rate" {
		t.Fatalf("unexpected headers: %v", headers)
	}
	want := [][]string{
		{"position", "1", "1", "1", "3", "4/6", "66.7%", "50.0%", "25.0%"},
		{"letter", "2", "0", "0", "4", "6/6", "100.0%", "100.0%", "0.0%"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Fatalf("row %d: got %v, want %v", i, rows[i], want[i])
		}
	}

	var buf bytes.Buffer
	if err := RenderSummary(&buf, summary); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "Hit rate") || !strings.Contains(buf.String(), "FA rate") {
		t.Fatalf("expected rate columns in report:\n%s", buf.String())
	}
}
