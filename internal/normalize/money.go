package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var amountReplacer = strings.NewReplacer(",", "", "원", "", "₩", "", " ", "")

// ParseAmount reads a won amount such as "1,200,000원" or "₩ 3500000".
// Returns nil if the cell is empty or not a number.
func ParseAmount(v *string) *int64 {
	if v == nil {
		return nil
	}
	s := amountReplacer.Replace(strings.TrimSpace(*v))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	w := int64(math.Round(f))
	return &w
}

// FormatAmount re-renders a numeric amount cell with thousands separators and
// leaves anything else verbatim.
func FormatAmount(v *string) string {
	if w := ParseAmount(v); w != nil {
		return humanize.Comma(*w)
	}
	if v == nil {
		return ""
	}
	return *v
}
