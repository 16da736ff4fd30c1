package utils

import (
	"fmt"
	"math"
)

// Money is stored as integer cents everywhere inside the service; floats
// exist only at the JSON boundary.

func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// FormatAmount renders cents as a dollar string, e.g. 15000 -> "$150.00".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
