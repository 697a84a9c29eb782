package stats

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/verte-zerg/nback/internal/model"
)

const rollingWindow = 5

// SummaryRows returns the per-modality outcome table shown after a session.
func SummaryRows(s model.Summary) (headers []string, rows [][]string) {
	p := message.NewPrinter(language.English)
	headers = []string{"Modality", "Hits", "Misses", "False+", "Rejects", "Score", "Accuracy", "Hit rate", "FA rate"}
	for _, m := range model.Modalities() {
		c := s.Tally.For(m)
		acc, hitRate, faRate := Metrics(c)
		rows = append(rows, []string{
			m.String(),
			p.Sprintf("%d", c.CorrectAccept),
			p.Sprintf("%d", c.Miss),
			p.Sprintf("%d", c.FalsePositive),
			p.Sprintf("%d", c.CorrectReject),
			p.Sprintf("%d/%d", c.Correct(), c.Total()),
			p.Sprintf("%.1f%%", acc*100),
			p.Sprintf("%.1f%%", hitRate*100),
			p.Sprintf("%.1f%%", faRate*100),
		})
	}
	return headers, rows
}

// RenderSummary prints a plain-text report for a finished or stopped session.
func RenderSummary(w io.Writer, s model.Summary) error {
	p := message.NewPrinter(language.English)
	status := "completed"
	if !s.Completed {
		status = "stopped"
	}
	if _, err := p.Fprintf(w, "Dual %d-back, %s\n", s.N, status); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "Evaluated trials: %d of %d\n", s.Evaluated, s.Trials); err != nil {
		return err
	}
	if !s.StartedAt.IsZero() && !s.EndedAt.IsZero() {
		if _, err := fmt.Fprintf(w, "Duration: %s\n", s.EndedAt.Sub(s.StartedAt).Round(time.Second)); err != nil {
			return err
		}
	}
	if s.Evaluated == 0 {
		_, err := fmt.Fprintln(w, "No trials were scored.")
		return err
	}

	headers, rows := SummaryRows(s)
	right := make(map[int]bool, len(headers))
	for i := 1; i < len(headers); i++ {
		right[i] = true
	}
	for _, line := range formatTable(headers, rows, right) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := p.Fprintf(w, "Combined accuracy: %.1f%%\n", CombinedAccuracy(s.Tally)*100); err != nil {
		return err
	}
	for _, m := range model.Modalities() {
		line := Sparkline(RollingAccuracy(s.Evaluations, m, rollingWindow))
		if _, err := fmt.Fprintf(w, "%-8s |%s|\n", m.String(), line); err != nil {
			return err
		}
	}
	return nil
}
