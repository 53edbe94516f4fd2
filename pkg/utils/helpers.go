package utils

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ContainsAny reports whether s contains any of the given substrings
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// RoundInt rounds half to even, so 18.5 becomes 18 and 19.5 becomes 20
func RoundInt(value float64) int {
	return int(math.RoundToEven(value))
}

// Clamp limits a value between min and max
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
