package processor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// MonthMapping maps gameweek number to 1-based month index. Gameweeks
// outside the mapping are excluded from monthly aggregates.
type MonthMapping map[int]int

// ParseMonthMapping parses a comma-separated list of inclusive gameweek
// ranges, e.g. "1-4,5-9,10-13": range i becomes month i. Malformed input
// fails closed to an empty mapping so monthly features degrade to empty
// tables instead of erroring.
func ParseMonthMapping(mappingStr string, logger *logrus.Logger) MonthMapping {
	mapping := MonthMapping{}
	if strings.TrimSpace(mappingStr) == "" {
		return mapping
	}

	for i, rangeStr := range strings.Split(mappingStr, ",") {
		month := i + 1
		rangeStr = strings.TrimSpace(rangeStr)

		if start, end, found := strings.Cut(rangeStr, "-"); found {
			startGw, err1 := strconv.Atoi(strings.TrimSpace(start))
			endGw, err2 := strconv.Atoi(strings.TrimSpace(end))
			if err1 != nil || err2 != nil || startGw > endGw {
				logger.WithField("range", rangeStr).Warn("Invalid month mapping range, using empty mapping")
				return MonthMapping{}
			}
			for gw := startGw; gw <= endGw; gw++ {
				mapping[gw] = month
			}
		} else {
			gw, err := strconv.Atoi(rangeStr)
			if err != nil {
				logger.WithField("range", rangeStr).Warn("Invalid month mapping entry, using empty mapping")
				return MonthMapping{}
			}
			mapping[gw] = month
		}
	}
	return mapping
}

// Months returns the distinct month indexes in ascending order.
func (m MonthMapping) Months() []int {
	seen := map[int]bool{}
	var months []int
	for _, month := range m {
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}
	sort.Ints(months)
	return months
}

// GwsForMonth returns the gameweeks mapped to month, ascending.
func (m MonthMapping) GwsForMonth(month int) []int {
	var gws []int
	for gw, mo := range m {
		if mo == month {
			gws = append(gws, gw)
		}
	}
	sort.Ints(gws)
	return gws
}

// LastGw returns the highest gameweek mapped to month, or 0 when the month
// has no gameweeks.
func (m MonthMapping) LastGw(month int) int {
	last := 0
	for gw, mo := range m {
		if mo == month && gw > last {
			last = gw
		}
	}
	return last
}

// MonthFor returns the month a gameweek belongs to, or 0 when unmapped.
func (m MonthMapping) MonthFor(gw int) int {
	return m[gw]
}
