package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes then strips combining marks, so "Kilométrage"
// compares equal to "kilometrage".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	reDayMonthYear = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})/(\d{4})\s*$`)
	reISODate      = regexp.MustCompile(`^\s*(\d{4})-(\d{1,2})-(\d{1,2})\s*$`)
)

// NormalizeText renders any cell value as a trimmed, lowercased,
// diacritic-folded string. Used for heuristic matching only, never for
// stored values.
func NormalizeText(v any) string {
	s := cellString(v)
	folded, _, err := transform.String(foldDiacritics, s)
	if err == nil {
		s = folded
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// cellString renders a raw cell value for display/matching.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case time.Time:
		return t.UTC().Format("2006-01-02")
	default:
		return ""
	}
}

// ParseNumber converts a raw cell value to a float, or nil when the cell
// holds nothing numeric. Date-typed cells are rejected outright so an epoch
// value can never leak into a numeric column.
func ParseNumber(v any) *float64 {
	switch t := v.(type) {
	case time.Time:
		return nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		f := t
		return &f
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		// Locale-formatted numbers: "12 500,5" -> "12500.5".
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// ToInt truncates ParseNumber toward zero. Magnitudes outside the int32
// range are rejected to protect the 32-bit montant column downstream.
func ToInt(v any) *int {
	f := ParseNumber(v)
	if f == nil {
		return nil
	}
	t := math.Trunc(*f)
	if t > math.MaxInt32 || t < math.MinInt32 {
		return nil
	}
	i := int(t)
	return &i
}

// ToFloat is ParseNumber under the name the record fields use.
func ToFloat(v any) *float64 {
	return ParseNumber(v)
}

// ParseDate unifies the four date encodings found in the source workbooks
// into "YYYY-MM-DD": native date cells, 1900-epoch numeric serials,
// "DD/MM/YYYY" strings and "YYYY-MM-DD" strings. Components are always read
// in UTC so the result cannot drift by a day with the process timezone.
// Dates that do not exist on the Gregorian calendar return nil.
func ParseDate(v any) *string {
	switch t := v.(type) {
	case time.Time:
		u := t.UTC()
		return validDate(u.Year(), int(u.Month()), u.Day())
	case float64:
		if t <= 0 {
			return nil
		}
		d, err := excelize.ExcelDateToTime(t, false)
		if err != nil {
			return nil
		}
		u := d.UTC()
		return validDate(u.Year(), int(u.Month()), u.Day())
	case string:
		if m := reDayMonthYear.FindStringSubmatch(t); m != nil {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return validDate(year, month, day)
		}
		if m := reISODate.FindStringSubmatch(t); m != nil {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			return validDate(year, month, day)
		}
		return nil
	default:
		return nil
	}
}

// validDate round-trips Y/M/D through a UTC constructor and compares the
// components back, so "31/04/2024" is rejected instead of clamped.
func validDate(year, month, day int) *string {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return nil
	}
	s := d.Format("2006-01-02")
	return &s
}
