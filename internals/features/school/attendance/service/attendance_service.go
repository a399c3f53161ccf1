package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/attendance/model"
	termmodel "ourschool_backend/internals/features/school/terms/model"
	settingsservice "ourschool_backend/internals/features/system/settings/service"
)

// Stats is the per-status day count for a set of records.
type Stats struct {
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
	LateDays    int `json:"late_days"`
	ExcusedDays int `json:"excused_days"`
}

// Statistics tallies records by status.
func Statistics(records []model.AttendanceRecordModel) Stats {
	var s Stats
	for i := range records {
		switch records[i].AttendanceStatus {
		case model.StatusPresent:
			s.PresentDays++
		case model.StatusAbsent:
			s.AbsentDays++
		case model.StatusLate:
			s.LateDays++
		case model.StatusExcused:
			s.ExcusedDays++
		}
	}
	return s
}

// Rate computes the attendance percentage. Present, late and excused
// days all count as acceptable attendance; the denominator is the
// required days of instruction, not the number of records.
func Rate(records []model.AttendanceRecordModel, requiredDays int) float64 {
	if requiredDays <= 0 {
		return 0
	}
	s := Statistics(records)
	acceptable := s.PresentDays + s.LateDays + s.ExcusedDays
	return float64(acceptable) / float64(requiredDays) * 100
}

// FirstAbsence returns the earliest absent date, or nil.
func FirstAbsence(records []model.AttendanceRecordModel) *time.Time {
	var first *time.Time
	for i := range records {
		r := &records[i]
		if r.AttendanceStatus != model.StatusAbsent {
			continue
		}
		if first == nil || r.AttendanceDate.Before(*first) {
			d := r.AttendanceDate
			first = &d
		}
	}
	return first
}

// RecentActivity summarizes the newest records as "MM/DD: status"
// joined with commas, newest first. Empty input yields "".
func RecentActivity(records []model.AttendanceRecordModel, limit int) string {
	if len(records) == 0 || limit <= 0 {
		return ""
	}

	sorted := make([]model.AttendanceRecordModel, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AttendanceDate.After(sorted[j].AttendanceDate)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	parts := make([]string, 0, len(sorted))
	for i := range sorted {
		parts = append(parts, fmt.Sprintf("%s: %s",
			sorted[i].AttendanceDate.Format("01/02"),
			sorted[i].AttendanceStatus))
	}
	return strings.Join(parts, ", ")
}

// SchoolDays counts the weekdays between two dates, inclusive.
func SchoolDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// RequiredDaysOfInstruction reads the configured denominator for
// attendance rates.
func RequiredDaysOfInstruction(db *gorm.DB) (int, error) {
	return settingsservice.GetInt(db,
		settingsservice.KeyRequiredDaysOfInstruction,
		settingsservice.DefaultRequiredDaysOfInstruction)
}

var ErrNoDateRange = errors.New("start and end dates are required when no academic year is given")

// ResolveDateRange derives a reporting window from an academic year's
// terms, or passes through explicit dates.
func ResolveDateRange(db *gorm.DB, academicYear string, start, end *time.Time) (time.Time, time.Time, error) {
	if academicYear != "" && (start == nil || end == nil) {
		var bounds struct {
			MinStart *time.Time
			MaxEnd   *time.Time
		}
		err := db.Model(&termmodel.TermModel{}).
			Select("MIN(term_start_date) AS min_start, MAX(term_end_date) AS max_end").
			Where("term_academic_year = ?", academicYear).
			Scan(&bounds).Error
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if bounds.MinStart == nil || bounds.MaxEnd == nil {
			return time.Time{}, time.Time{}, fmt.Errorf("no terms found for academic year %s", academicYear)
		}
		return *bounds.MinStart, *bounds.MaxEnd, nil
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, ErrNoDateRange
	}
	return *start, *end, nil
}
