package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidOddsFormat means an odds string was not numeric after cleanup.
// Callers drop the single selection and continue.
var ErrInvalidOddsFormat = errors.New("invalid odds format")

// ParseAmericanOdds parses a provider odds string into a signed integer.
// Strips a leading "+" and normalizes non-ASCII minus glyphs (some books emit
// U+2212 and U+2013 instead of "-") before parsing.
func ParseAmericanOdds(s string) (int, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "−", "-") // minus sign
	cleaned = strings.ReplaceAll(cleaned, "–", "-") // en dash
	cleaned = strings.TrimPrefix(cleaned, "+")

	parsed, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOddsFormat, s)
	}
	return parsed, nil
}

// AmericanToDecimal converts American odds to a decimal multiplier.
// +150 -> 2.50, -150 -> 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}

	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}
	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds back to American.
// 2.50 -> +150, 1.67 -> -150
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0")
	}

	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// WinProfit returns the profit on a winning stake at the given American odds.
// Positive odds pay odds/100 per unit staked; negative odds pay 100/|odds|.
func WinProfit(stake float64, american int) float64 {
	if american > 0 {
		return stake * float64(american) / 100.0
	}
	return stake * 100.0 / math.Abs(float64(american))
}

// Payout returns stake plus profit for a winning stake at the given odds
func Payout(stake float64, american int) float64 {
	return stake + WinProfit(stake, american)
}
