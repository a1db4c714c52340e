package utils

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds x to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FormatVND renders a whole-dong amount with dot thousand separators, the way
// amounts appear on invoices ("2.345.000 VNĐ" without the unit suffix).
func FormatVND(amount float64) string {
	neg := amount < 0
	s := strconv.FormatInt(int64(math.Abs(math.Trunc(amount))), 10)

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, ".")
	if neg {
		out = "-" + out
	}
	return out
}
