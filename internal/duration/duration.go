// Package duration parses ISO-8601 duration tokens of the form PT[nH][mM]
// as used by flight provider APIs.
package duration

import (
	"regexp"
	"strconv"
)

var pattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// Minutes converts a duration token like "PT2H15M" into total minutes.
// Absent or unparseable input yields 0; a bad duration is a degraded value,
// never a fatal condition.
func Minutes(s string) int {
	if s == "" {
		return 0
	}

	match := pattern.FindStringSubmatch(s)
	if match == nil {
		return 0
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	return hours*60 + minutes
}
