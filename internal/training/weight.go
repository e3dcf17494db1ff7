package training

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the numeric prefix of a weight such as "82.5kg".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseWeight extracts a finite number from a free-form weight value.
// Leading whitespace and trailing units are ignored and a lone decimal comma
// is accepted ("82,5"). The bool is false when no finite number is found.
func ParseWeight(q Quantity) (float64, bool) {
	s := strings.TrimSpace(string(q))
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	match := leadingNumber.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
