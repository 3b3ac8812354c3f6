package provider

import (
	"strconv"
	"strings"
)

// StrikeRate returns runs/balls*100, or 0 when no balls were faced.
func StrikeRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / float64(balls) * 100
}

// Economy returns runs*6/balls, or 0 when no balls were bowled.
func Economy(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) * 6 / float64(balls)
}

// RunRate returns runs per over, or 0 when overs is missing, malformed or zero.
func RunRate(runs int, overs string) float64 {
	dec, ok := OversToDecimal(overs)
	if !ok || dec <= 0 {
		return 0
	}
	return float64(runs) / dec
}

// OversToDecimal converts overs notation into fractional overs: "20.3" is
// 20 overs and 3 balls, i.e. 20.5. ok is false for empty or malformed input.
func OversToDecimal(overs string) (float64, bool) {
	overs = strings.TrimSpace(overs)
	if overs == "" {
		return 0, false
	}

	whole, balls, hasBalls := strings.Cut(overs, ".")
	o, err := strconv.Atoi(whole)
	if err != nil || o < 0 {
		return 0, false
	}
	if !hasBalls {
		return float64(o), true
	}

	b, err := strconv.Atoi(balls)
	if err != nil || b < 0 {
		return 0, false
	}
	return float64(o) + float64(b)/6, true
}
