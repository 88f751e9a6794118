package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Outcome is who won a self-play match
type Outcome string

const (
	WinA Outcome = "a"
	WinB Outcome = "b"
	Draw Outcome = "draw"
)

// Reasons a match ends
const (
	ReasonStates    = "states"
	ReasonIP        = "ip"
	ReasonTruth     = "truth"
	ReasonTiebreak  = "tiebreak"
	ReasonTurnLimit = "turn_limit"
)

// MatchResult is the outcome of one engine-vs-engine match
type MatchResult struct {
	ID          string  `json:"id"`
	Index       int     `json:"index"`
	Seed        int64   `json:"seed"`
	DifficultyA string  `json:"difficultyA"`
	DifficultyB string  `json:"difficultyB"`
	FactionA    string  `json:"factionA"`
	Winner      Outcome `json:"winner"`
	Reason      string  `json:"reason"`
	Turns       int     `json:"turns"`
	StatesA     int     `json:"statesA"`
	StatesB     int     `json:"statesB"`
	IPA         int     `json:"ipA"`
	IPB         int     `json:"ipB"`
	Truth       int     `json:"truth"`
	CardsPlayed int     `json:"cardsPlayed"`
}

// Margin is A's state lead at the end of the match
func (r MatchResult) Margin() float64 {
	return float64(r.StatesA - r.StatesB)
}

// Statistics accumulates match results. Margins are measured from A's side.
type Statistics struct {
	Matches int
	WinsA   int
	WinsB   int
	Draws   int

	SumMargin  float64
	SumMargin2 float64   // Sum of squares for variance calculation
	Values     []float64 // Every margin, for median/percentiles

	Turns       int
	CardsPlayed int
	Reasons     map[string]int
}

// Add incorporates a match result
func (s *Statistics) Add(r MatchResult) {
	m := r.Margin()
	s.Matches++
	s.SumMargin += m
	s.SumMargin2 += m * m
	s.Values = append(s.Values, m)
	s.Turns += r.Turns
	s.CardsPlayed += r.CardsPlayed

	switch r.Winner {
	case WinA:
		s.WinsA++
	case WinB:
		s.WinsB++
	default:
		s.Draws++
	}

	if s.Reasons == nil {
		s.Reasons = make(map[string]int)
	}
	s.Reasons[r.Reason]++
}

// WinRateA is A's share of matches won; draws count as half
func (s *Statistics) WinRateA() float64 {
	if s.Matches == 0 {
		return 0
	}
	return (float64(s.WinsA) + 0.5*float64(s.Draws)) / float64(s.Matches)
}

// WinRateB is B's share of matches won; draws count as half
func (s *Statistics) WinRateB() float64 {
	if s.Matches == 0 {
		return 0
	}
	return 1 - s.WinRateA()
}

// Mean returns the mean state margin
func (s *Statistics) Mean() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Matches)
}

// Variance returns the sample variance of the margin
func (s *Statistics) Variance() float64 {
	if s.Matches < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMargin2 - float64(s.Matches)*mean*mean) / float64(s.Matches-1)
}

// StdDev returns the sample standard deviation of the margin
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(0, s.Variance()))
}

// StdError returns the standard error of the mean margin
func (s *Statistics) StdError() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Matches))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean margin
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median margin
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the p-th percentile (0..1) of the margins, linearly
// interpolated
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	p = math.Max(0, math.Min(1, p))
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// MeanTurns is the average match length
func (s *Statistics) MeanTurns() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Matches)
}

// Validate checks that the accumulators agree with each other
func (s *Statistics) Validate() error {
	if s.WinsA+s.WinsB+s.Draws != s.Matches {
		return fmt.Errorf("outcomes (%d+%d+%d) do not sum to %d matches", s.WinsA, s.WinsB, s.Draws, s.Matches)
	}
	if len(s.Values) != s.Matches {
		return fmt.Errorf("recorded %d margins for %d matches", len(s.Values), s.Matches)
	}
	reasons := 0
	for _, n := range s.Reasons {
		reasons += n
	}
	if reasons != s.Matches {
		return fmt.Errorf("recorded %d end reasons for %d matches", reasons, s.Matches)
	}
	return nil
}
