package render

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

// FallbackFestivalDate is shown when no last fasting day can be found or parsed.
const FallbackFestivalDate = "20 Mart 2026 Cuma Ramazan Bayramının 1.Günüdür"

const festivalSuffix = "Ramazan Bayramının 1.Günüdür"

var monthNames = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// indexed by time.Weekday
var weekdayNames = [7]string{
	"Pazar", "Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi",
}

var solarPattern = regexp.MustCompile(`(\d{1,2})\s+(\S+)\s+(\d{4})\s+(\S+)`)

var errSolarFormat = errors.New("unrecognised solar date")

// ParseSolar parses "29 Mart 2026 Pazar". The weekday name is required by
// the format but the returned date does not depend on it.
func ParseSolar(s string) (time.Time, error) {
	m := solarPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", errSolarFormat, s)
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	month := -1
	for i, name := range monthNames {
		if name == m[2] {
			month = i
			break
		}
	}
	if month < 0 {
		return time.Time{}, fmt.Errorf("%w: unknown month %q", errSolarFormat, m[2])
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC), nil
}

// FormatSolar renders a date as "30 Mart 2026 Pazartesi".
func FormatSolar(t time.Time) string {
	return fmt.Sprintf("%d %s %d %s", t.Day(), monthNames[t.Month()-1], t.Year(), weekdayNames[t.Weekday()])
}

// FestivalDate returns the day after the last fasting day found in rows.
func FestivalDate(rows []model.CalendarRow) (string, bool) {
	for _, r := range rows {
		if !IsFastingDay(r.Lunar, lastFastingDay) {
			continue
		}
		d, err := ParseSolar(r.Solar)
		if err != nil {
			return "", false
		}
		return FormatSolar(d.AddDate(0, 0, 1)), true
	}
	return "", false
}

// FestivalSentence is the announcement shown under the table.
func FestivalSentence(rows []model.CalendarRow) string {
	date, ok := FestivalDate(rows)
	if !ok {
		return FallbackFestivalDate
	}
	return date + " " + festivalSuffix
}
