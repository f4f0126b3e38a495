package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISOWeek_ReferenceDates(t *testing.T) {
	// 2025-12-29 is a Monday in week 1 of 2026 per ISO-8601, not week 53.
	assert.Equal(t, 1, ISOWeek("2025-12-29"))
	// January 4 is always in week 1.
	assert.Equal(t, 1, ISOWeek("2026-01-04"))
	assert.Equal(t, 1, ISOWeek("2025-01-04"))
	// 2026-01-01 is a Thursday, so the year starts in week 1.
	assert.Equal(t, 1, ISOWeek("2026-01-01"))
	// 2021-01-01 is a Friday; it still belongs to week 53 of 2020.
	assert.Equal(t, 53, ISOWeek("2021-01-01"))
	assert.Equal(t, 0, ISOWeek("garbage"))
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, "Thu", Weekday("2025-12-04"))
	assert.Equal(t, "Sun", Weekday("2025-12-07"))
	assert.Equal(t, "", Weekday("not-a-date"))
}

func TestSortWeekdays(t *testing.T) {
	labels := []string{"Fri", "Mon", "Wed", "???", "Tue"}
	SortWeekdays(labels)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Fri", "???"}, labels)
}

func TestWorkingDays_SkipsWeekends(t *testing.T) {
	// 2025-12-04 (Thu) .. 2025-12-10 (Wed): Sat 06 and Sun 07 skipped.
	var got []string
	for d := range WorkingDays("2025-12-04", "2025-12-10") {
		got = append(got, d)
	}
	assert.Equal(t, []string{"2025-12-04", "2025-12-05", "2025-12-08", "2025-12-09", "2025-12-10"}, got)
}

func TestWorkingDays_Restartable(t *testing.T) {
	seq := WorkingDays("2025-12-04", "2025-12-10")
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, count(), count())
}

func TestWorkingDays_BadBounds(t *testing.T) {
	for range WorkingDays("nope", "2025-12-10") {
		t.Fatal("expected empty sequence")
	}
}

func TestExportRoundTrip(t *testing.T) {
	for _, date := range []string{"2025-12-04", "2026-01-05", "2026-02-28", "2024-02-29"} {
		got, err := ParseExport(FormatExport(date))
		require.NoError(t, err)
		assert.Equal(t, date, got)
	}
}

func TestParseExport_UnpaddedAndInvalid(t *testing.T) {
	got, err := ParseExport("5.1.2026")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", got)

	// 2-digit years are a documented limitation, not a guess.
	_, err = ParseExport("05.01.26")
	assert.Error(t, err)
	_, err = ParseExport("2026-01-05")
	assert.Error(t, err)
	_, err = ParseExport("32.01.2026")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "2026-01-05", Normalize("2026-01-05"))
	assert.Equal(t, "2026-01-05", Normalize("05.01.2026"))
	assert.Equal(t, "2026-01-05", Normalize(" 5.1.2026 "))
	assert.Equal(t, "", Normalize("05.01.26"))
	assert.Equal(t, "", Normalize("hello"))
}

func TestLooksLikeExportDate(t *testing.T) {
	assert.True(t, LooksLikeExportDate("5.1.2026"))
	assert.True(t, LooksLikeExportDate("05.01.2026"))
	assert.False(t, LooksLikeExportDate("05.01.26"))
	assert.False(t, LooksLikeExportDate("2026-01-05"))
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "05.01.26", FormatDisplay("2026-01-05"))
	assert.Equal(t, "", FormatDisplay(""))
}
