package model

import "testing"

func TestClassifyCoversFourOutcomes(t *testing.T) {
	cases := []struct {
		isMatch   bool
		responded bool
		want      Outcome
	}{
		{true, true, OutcomeCorrectAccept},
		{true, false, OutcomeMiss},
		{false, true, OutcomeFalsePositive},
		{false, false, OutcomeCorrectReject},
	}
	var counts Counts
	for _, tc := range cases {
		got := Classify(tc.isMatch, tc.responded)
		if got != tc.want {
			t.Fatalf("Classify(%v, %v) = %s, want %s", tc.isMatch, tc.responded, got, tc.want)
		}
		counts.Add(got)
	}
	if counts != (Counts{CorrectAccept: 1, Miss: 1, FalsePositive: 1, CorrectReject: 1}) {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if counts.Total() != 4 || counts.Correct() != 2 {
		t.Fatalf("unexpected totals: total=%d correct=%d", counts.Total(), counts.Correct())
	}
}

func TestTallyRoutesByModality(t *testing.T) {
	var tally Tally
	tally.Add(ModalityPosition, OutcomeMiss)
	tally.Add(ModalityLetter, OutcomeCorrectAccept)
	tally.Add(ModalityLetter, OutcomeCorrectAccept)
	if tally.For(ModalityPosition).Miss != 1 {
		t.Fatalf("unexpected position counts: %+v", tally.Position)
	}
	if tally.For(ModalityLetter).CorrectAccept != 2 {
		t.Fatalf("unexpected letter counts: %+v", tally.Letter)
	}
}

func TestStimulusMatches(t *testing.T) {
	a := Stimulus{Position: 4, Letter: "K"}
	b := Stimulus{Position: 4, Letter: "Q"}
	if !a.Matches(b, ModalityPosition) {
		t.Fatalf("expected position match")
	}
	if a.Matches(b, ModalityLetter) {
		t.Fatalf("expected letter mismatch")
	}
}

func TestModalitiesEvaluationOrder(t *testing.T) {
	got := Modalities()
	if len(got) != 2 || got[0] != ModalityPosition || got[1] != ModalityLetter {
		t.Fatalf("unexpected modalities: %v", got)
	}
	if got[0].String() != "position" || got[1].String() != "letter" {
		t.Fatalf("unexpected names: %s %s", got[0], got[1])
	}
}

func TestConfigPositions(t *testing.T) {
	if got := (Config{GridSide: 3}).Positions(); got != 9 {
		t.Fatalf("expected 9 positions, got %d", got)
	}
}
