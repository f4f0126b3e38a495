package calendar

import (
	"fmt"
	"iter"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ISO is the canonical date layout used everywhere in storage (YYYY-MM-DD).
const ISO = "2006-01-02"

var exportDatePattern = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`)

// weekdayOrder sorts 3-letter weekday labels Monday-first for filter lists.
var weekdayOrder = map[string]int{
	"Mon": 1, "Tue": 2, "Wed": 3, "Thu": 4, "Fri": 5, "Sat": 6, "Sun": 7,
}

func parse(date string) (time.Time, bool) {
	t, err := time.Parse(ISO, date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Weekday returns the 3-letter weekday label (Mon..Sun) for an ISO date,
// or "" for unparseable input.
func Weekday(date string) string {
	t, ok := parse(date)
	if !ok {
		return ""
	}
	return t.Format("Mon")
}

// ISOWeek returns the ISO-8601 week number for an ISO date (the week holding
// the year's first Thursday is week 1), or 0 for unparseable input.
func ISOWeek(date string) int {
	t, ok := parse(date)
	if !ok {
		return 0
	}
	_, week := t.ISOWeek()
	return week
}

// SortWeekdays orders 3-letter weekday labels Mon..Sun in place. Unknown
// labels sort last.
func SortWeekdays(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		oi, ok := weekdayOrder[labels[i]]
		if !ok {
			oi = 99
		}
		oj, ok := weekdayOrder[labels[j]]
		if !ok {
			oj = 99
		}
		return oi < oj
	})
}

// WorkingDays yields the ISO dates from start to end inclusive, skipping
// Saturdays and Sundays. The sequence is finite and can be ranged over more
// than once. Unparseable bounds yield an empty sequence.
func WorkingDays(start, end string) iter.Seq[string] {
	return func(yield func(string) bool) {
		from, ok := parse(start)
		if !ok {
			return
		}
		to, ok := parse(end)
		if !ok {
			return
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			if !yield(d.Format(ISO)) {
				return
			}
		}
	}
}

// FormatDisplay renders an ISO date as DD.MM.YY for table display.
func FormatDisplay(date string) string {
	t, ok := parse(date)
	if !ok {
		return ""
	}
	return t.Format("02.01.06")
}

// FormatExport renders an ISO date as DD.MM.YYYY, the CSV export form.
func FormatExport(date string) string {
	t, ok := parse(date)
	if !ok {
		return ""
	}
	return t.Format("02.01.2006")
}

// ParseExport is the inverse of FormatExport: DD.MM.YYYY (day and month may be
// unpadded) back to YYYY-MM-DD. Only 4-digit years are accepted; 2-digit years
// are rejected rather than guessed at.
func ParseExport(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return "", fmt.Errorf("not a DD.MM.YYYY date: %q", s)
	}
	day := pad2(parts[0])
	month := pad2(parts[1])
	iso := parts[2] + "-" + month + "-" + day
	if _, ok := parse(iso); !ok {
		return "", fmt.Errorf("not a DD.MM.YYYY date: %q", s)
	}
	return iso, nil
}

// Normalize accepts either canonical YYYY-MM-DD (pass-through) or the export
// form DD.MM.YYYY and returns the canonical form. Returns "" when the input is
// neither.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ".") {
		iso, err := ParseExport(s)
		if err != nil {
			return ""
		}
		return iso
	}
	if _, ok := parse(s); !ok {
		return ""
	}
	return s
}

// LooksLikeExportDate reports whether a cell value has the D.M.YYYY shape.
// Used to sniff the date column of an imported table when no header matches.
func LooksLikeExportDate(s string) bool {
	return exportDatePattern.MatchString(strings.TrimSpace(s))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
