// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Config defines session settings.
type Config struct {
	N         int
	Trials    int
	GridSide  int
	Letters   []string
	Interval  time.Duration
	SpeechCmd string
}

// Positions returns the number of grid cells a stimulus can occupy.
func (c Config) Positions() int {
	return c.GridSide * c.GridSide
}

// Stimulus is one paired presentation: a grid cell and a letter.
type Stimulus struct {
	Position int
	Letter   string
}

// Sequence is the ordered list of stimuli for a session.
type Sequence []Stimulus

// Modality identifies an independent stimulus channel.
type Modality int

const (
	ModalityPosition Modality = iota
	ModalityLetter
)

// Modalities returns every modality in evaluation order.
func Modalities() []Modality {
	return []Modality{ModalityPosition, ModalityLetter}
}

func (m Modality) String() string {
	switch m {
	case ModalityPosition:
		return "position"
	case ModalityLetter:
		return "letter"
	default:
		return fmt.Sprintf("modality(%d)", int(m))
	}
}

// Matches reports whether two stimuli agree on the given modality.
func (s Stimulus) Matches(other Stimulus, m Modality) bool {
	if m == ModalityPosition {
		return s.Position == other.Position
	}
	return s.Letter == other.Letter
}

// Outcome classifies one evaluated trial for one modality.
type Outcome int

const (
	OutcomeCorrectAccept Outcome = iota
	OutcomeMiss
	OutcomeFalsePositive
	OutcomeCorrectReject
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrectAccept:
		return "correct-accept"
	case OutcomeMiss:
		return "miss"
	case OutcomeFalsePositive:
		return "false-positive"
	case OutcomeCorrectReject:
		return "correct-reject"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Correct reports whether the outcome counts as a right answer.
func (o Outcome) Correct() bool {
	return o == OutcomeCorrectAccept || o == OutcomeCorrectReject
}

// Classify maps ground truth and the user's response onto an outcome.
func Classify(isMatch, responded bool) Outcome {
	switch {
	case isMatch && responded:
		return OutcomeCorrectAccept
	case isMatch:
		return OutcomeMiss
	case responded:
		return OutcomeFalsePositive
	default:
		return OutcomeCorrectReject
	}
}

// Counts holds the four outcome buckets for one modality.
type Counts struct {
	CorrectAccept int
	Miss          int
	FalsePositive int
	CorrectReject int
}

// Add increments the bucket for the outcome.
func (c *Counts) Add(o Outcome) {
	switch o {
	case OutcomeCorrectAccept:
		c.CorrectAccept++
	case OutcomeMiss:
		c.Miss++
	case OutcomeFalsePositive:
		c.FalsePositive++
	case OutcomeCorrectReject:
		c.CorrectReject++
	}
}

// Total returns the number of evaluated trials.
func (c Counts) Total() int {
	return c.CorrectAccept + c.Miss + c.FalsePositive + c.CorrectReject
}

// Correct returns correct accepts plus correct rejects.
func (c Counts) Correct() int {
	return c.CorrectAccept + c.CorrectReject
}

// Tally holds per-modality outcome counts for a session.
type Tally struct {
	Position Counts
	Letter   Counts
}

// For returns the counts for a modality.
func (t Tally) For(m Modality) Counts {
	if m == ModalityPosition {
		return t.Position
	}
	return t.Letter
}

// Add records an outcome for a modality.
func (t *Tally) Add(m Modality, o Outcome) {
	if m == ModalityPosition {
		t.Position.Add(o)
		return
	}
	t.Letter.Add(o)
}

// Evaluation records the outcome of one trial for one modality.
type Evaluation struct {
	Trial    int
	Modality Modality
	Outcome  Outcome
}

// Summary captures a finished or stopped session.
type Summary struct {
	N           int
	Trials      int
	Evaluated   int
	Completed   bool
	Tally       Tally
	Evaluations []Evaluation
	StartedAt   time.Time
	EndedAt     time.Time
}
