package render

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lexical markers of the lunar calendar. The spellings are transliteration
// variants seen in the API data and are matched after Turkish upper-casing.
var (
	postObservanceMonth = []string{"ŞEVVAL", "SEVVAL"}
	fastingMonth        = []string{"RAMAZAN", "RAMADAN"}
)

const (
	commemorativeDay = 26
	lastFastingDay   = 30
)

func upperTR(s string) string {
	return cases.Upper(language.Turkish).String(s)
}

// IsPostObservance reports whether a lunar date falls into the month after
// the fasting month. Such rows are excluded from the table.
func IsPostObservance(lunar string) bool {
	up := upperTR(lunar)
	for _, m := range postObservanceMonth {
		if strings.Contains(up, m) {
			return true
		}
	}
	return false
}

// IsFastingDay reports whether a lunar date is the given day of the fasting month.
func IsFastingDay(lunar string, day int) bool {
	fields := strings.Fields(upperTR(lunar))
	want := strconv.Itoa(day)
	for i := 1; i < len(fields); i++ {
		if fields[i-1] != want {
			continue
		}
		for _, m := range fastingMonth {
			if fields[i] == m {
				return true
			}
		}
	}
	return false
}
