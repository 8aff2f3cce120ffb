// Package fairness scores resource distribution across players and
// drives the retry loop that regenerates placement until the score
// clears the acceptance bar or the attempt budget runs out. A low
// score is never fatal: the best attempt is returned with its score
// attached for the caller to judge.
package fairness

import (
	"math"

	"github.com/talgya/terraforge/internal/resources"
)

const (
	// TargetScore accepts an attempt immediately.
	TargetScore = 80.0
	// MaxAttempts bounds the retry loop.
	MaxAttempts = 10
)

// PlayerStat is one player's share of the metal layout.
type PlayerStat struct {
	Team       int     `json:"team"`
	SpotCount  int     `json:"spot_count"`
	TotalValue float64 `json:"total_value"`
}

// Report is the fairness evaluation of one resource layout.
type Report struct {
	Players           []PlayerStat `json:"players"`
	SpotCountCV       float64      `json:"spot_count_cv"`
	ValueCV           float64      `json:"value_cv"`
	SpotCountFairness float64      `json:"spot_count_fairness"`
	ValueFairness     float64      `json:"value_fairness"`
	Overall           float64      `json:"overall"` // [0, 100]
	Attempts          int          `json:"attempts"`
}

// Evaluate reduces a layout to per-player stats and fairness scores.
// Spot-value evenness dominates the overall score; raw spot counts are
// the secondary term.
func Evaluate(layout *resources.Layout, players int) Report {
	counts := make([]float64, players)
	values := make([]float64, players)
	for _, s := range layout.Metal {
		if s.Territory < 0 || s.Territory >= players {
			continue
		}
		counts[s.Territory]++
		values[s.Territory] += s.Value
	}

	r := Report{
		SpotCountCV: CV(counts),
		ValueCV:     CV(values),
	}
	for i := 0; i < players; i++ {
		r.Players = append(r.Players, PlayerStat{
			Team:       i + 1,
			SpotCount:  int(counts[i]),
			TotalValue: values[i],
		})
	}

	r.SpotCountFairness = subScore(r.SpotCountCV)
	r.ValueFairness = subScore(r.ValueCV)
	r.Overall = 0.6*r.ValueFairness + 0.4*r.SpotCountFairness
	return r
}

// CV is the population coefficient of variation, in percent. Zero for
// an empty list or a zero mean.
func CV(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	if mean == 0 {
		return 0
	}

	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(vals)))
	return stddev / mean * 100
}

func subScore(cv float64) float64 {
	s := 100 - 4*cv
	if s < 0 {
		return 0
	}
	return s
}

// Attempt is one full placement cycle produced by the balancer's
// generate callback. Index is the 1-based attempt number that won, so
// the caller can recover any per-attempt state it kept alongside.
type Attempt struct {
	Index  int
	Layout *resources.Layout
	Report Report
}

// Balance runs up to MaxAttempts placement cycles, accepting the first
// one that reaches TargetScore. Each cycle regenerates the whole
// placement, start positions included, through the generate callback.
// If the budget runs out, the best-scoring attempt is returned with
// its achieved score.
func Balance(players int, generate func(attempt int) *resources.Layout) Attempt {
	var best Attempt
	executed := 0

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		executed = attempt
		layout := generate(attempt)
		report := Evaluate(layout, players)

		if best.Layout == nil || report.Overall > best.Report.Overall {
			best = Attempt{Index: attempt, Layout: layout, Report: report}
		}
		if report.Overall >= TargetScore {
			break
		}
	}

	// Attempts records how many cycles ran, not which one won.
	best.Report.Attempts = executed
	return best
}
