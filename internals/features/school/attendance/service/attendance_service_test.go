package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ourschool_backend/internals/features/school/attendance/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func record(date, status string) model.AttendanceRecordModel {
	return model.AttendanceRecordModel{
		AttendanceDate:   day(date),
		AttendanceStatus: status,
	}
}

func TestStatistics(t *testing.T) {
	records := []model.AttendanceRecordModel{
		record("2026-01-05", model.StatusPresent),
		record("2026-01-06", model.StatusPresent),
		record("2026-01-07", model.StatusAbsent),
		record("2026-01-08", model.StatusLate),
		record("2026-01-09", model.StatusExcused),
	}

	s := Statistics(records)
	assert.Equal(t, 2, s.PresentDays)
	assert.Equal(t, 1, s.AbsentDays)
	assert.Equal(t, 1, s.LateDays)
	assert.Equal(t, 1, s.ExcusedDays)
}

func TestRateUsesRequiredDaysAsDenominator(t *testing.T) {
	// 90 acceptable days over a 180-day requirement is 50%, no matter
	// how many absences are on file.
	records := make([]model.AttendanceRecordModel, 0, 100)
	base := day("2026-01-05")
	for i := 0; i < 90; i++ {
		records = append(records, model.AttendanceRecordModel{
			AttendanceDate:   base.AddDate(0, 0, i),
			AttendanceStatus: model.StatusPresent,
		})
	}
	for i := 90; i < 100; i++ {
		records = append(records, model.AttendanceRecordModel{
			AttendanceDate:   base.AddDate(0, 0, i),
			AttendanceStatus: model.StatusAbsent,
		})
	}

	assert.InDelta(t, 50.0, Rate(records, 180), 1e-9)
}

func TestRateCountsLateAndExcusedAsAcceptable(t *testing.T) {
	records := []model.AttendanceRecordModel{
		record("2026-01-05", model.StatusPresent),
		record("2026-01-06", model.StatusLate),
		record("2026-01-07", model.StatusExcused),
		record("2026-01-08", model.StatusAbsent),
	}
	// 3 acceptable of 10 required
	assert.InDelta(t, 30.0, Rate(records, 10), 1e-9)
}

func TestRateZeroRequiredDays(t *testing.T) {
	records := []model.AttendanceRecordModel{record("2026-01-05", model.StatusPresent)}
	assert.Zero(t, Rate(records, 0))
	assert.Zero(t, Rate(records, -1))
}

func TestFirstAbsence(t *testing.T) {
	records := []model.AttendanceRecordModel{
		record("2026-03-10", model.StatusAbsent),
		record("2026-01-07", model.StatusAbsent),
		record("2026-01-05", model.StatusPresent),
	}

	first := FirstAbsence(records)
	require.NotNil(t, first)
	assert.Equal(t, "2026-01-07", first.Format("2006-01-02"))

	assert.Nil(t, FirstAbsence([]model.AttendanceRecordModel{
		record("2026-01-05", model.StatusPresent),
	}))
	assert.Nil(t, FirstAbsence(nil))
}

func TestRecentActivityFormat(t *testing.T) {
	records := []model.AttendanceRecordModel{
		record("2026-01-05", model.StatusPresent),
		record("2026-01-06", model.StatusLate),
		record("2026-01-07", model.StatusAbsent),
		record("2026-01-08", model.StatusPresent),
	}

	got := RecentActivity(records, 3)
	assert.Equal(t, "01/08: present, 01/07: absent, 01/06: late", got)
}

func TestRecentActivityShortAndEmptyInput(t *testing.T) {
	records := []model.AttendanceRecordModel{
		record("2026-02-14", model.StatusExcused),
	}
	assert.Equal(t, "02/14: excused", RecentActivity(records, 3))
	assert.Equal(t, "", RecentActivity(nil, 3))
	assert.Equal(t, "", RecentActivity(records, 0))
}

func TestSchoolDays(t *testing.T) {
	// 2026-01-05 is a Monday
	assert.Equal(t, 5, SchoolDays(day("2026-01-05"), day("2026-01-09")))
	assert.Equal(t, 5, SchoolDays(day("2026-01-05"), day("2026-01-11"))) // weekend included
	assert.Equal(t, 10, SchoolDays(day("2026-01-05"), day("2026-01-16")))
	assert.Equal(t, 1, SchoolDays(day("2026-01-05"), day("2026-01-05")))
	assert.Equal(t, 0, SchoolDays(day("2026-01-10"), day("2026-01-11"))) // Sat-Sun
	assert.Equal(t, 0, SchoolDays(day("2026-01-09"), day("2026-01-05"))) // inverted
}

func TestResolveDateRangeRequiresInput(t *testing.T) {
	_, _, err := ResolveDateRange(nil, "", nil, nil)
	assert.ErrorIs(t, err, ErrNoDateRange)

	start := day("2026-01-05")
	end := day("2026-06-12")
	gotStart, gotEnd, err := ResolveDateRange(nil, "", &start, &end)
	require.NoError(t, err)
	assert.Equal(t, start, gotStart)
	assert.Equal(t, end, gotEnd)
}
