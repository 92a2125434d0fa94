package utils

import "strconv"

// RoundTo rounds v to the given number of decimal places. Ties are decided
// on the exact binary value and an exact half rounds to even, so 0.125
// becomes 0.12 while 2.675 (stored just below the half) becomes 2.67.
func RoundTo(v float64, places int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
