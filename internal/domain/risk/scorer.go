package risk

import (
	"fmt"
	"math"
	"sort"
)

// Scoring constants. The weights are calibrated against historical
// contamination incidents and must not be re-normalized.
const (
	idealTemperature = 4.0
	maxTemperature   = 40.0
	idealPH          = 6.5
	phSpread         = 4.0
	bacteriaCeiling  = 1_000_000.0

	weightTemperature = 0.30
	weightHumidity    = 0.20
	weightPH          = 0.15
	weightBacteria    = 0.35
)

const (
	thresholdHigh   = 60.0
	thresholdMedium = 30.0
)

const maxReasons = 2

type metric struct {
	name   string
	weight float64
	danger func(Reading) float64
}

// Enumeration order doubles as the tie-break order for reasons.
var metrics = []metric{
	{"temperature", weightTemperature, func(r Reading) float64 {
		return clamp((r.Temperature - idealTemperature) / (maxTemperature - idealTemperature) * 100)
	}},
	{"humidity", weightHumidity, func(r Reading) float64 {
		return clamp(r.Humidity)
	}},
	{"pH", weightPH, func(r Reading) float64 {
		return clamp(math.Abs(r.PH-idealPH) / phSpread * 100)
	}},
	{"bacterialCount", weightBacteria, func(r Reading) float64 {
		return clamp(r.BacterialCount / bacteriaCeiling * 100)
	}},
}

// Assess converts a raw sensor reading into a contamination risk assessment.
// It is a total function: non-finite inputs flow through as non-finite
// scores rather than panics.
func Assess(r Reading) Assessment {
	raw := make(map[string]float64, len(metrics))
	contributions := make([]contribution, 0, len(metrics))

	score := 0.0
	for _, m := range metrics {
		danger := m.danger(r)
		raw[m.name] = danger
		impact := danger * m.weight
		score += impact
		contributions = append(contributions, contribution{name: m.name, impact: impact})
	}
	score = round2(score)

	return Assessment{
		Score:    score,
		Category: categoryFor(score),
		Reasons:  topReasons(contributions),
		Raw:      raw,
	}
}

type contribution struct {
	name   string
	impact float64
}

func topReasons(contributions []contribution) []string {
	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].impact > contributions[j].impact
	})
	if len(contributions) > maxReasons {
		contributions = contributions[:maxReasons]
	}
	reasons := make([]string, 0, len(contributions))
	for _, c := range contributions {
		reasons = append(reasons, fmt.Sprintf("%s (impact %.1f)", c.name, c.impact))
	}
	return reasons
}

func categoryFor(score float64) Category {
	switch {
	case score >= thresholdHigh:
		return CategoryHigh
	case score >= thresholdMedium:
		return CategoryMedium
	default:
		return CategoryLow
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
