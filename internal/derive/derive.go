// Package derive contains the pure view computations over repository query
// results: agenda ordering, calendar membership, activity counts and
// completion progress. Nothing here touches storage or mutates its input.
package derive

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/arvo-app/arvo/internal/models"
)

// SortByTime returns the schedules ordered ascending by time-of-day. The
// "HH:MM" layout is fixed-width, so lexical comparison is a correct time
// comparison. The sort is stable: equal times keep insertion order.
func SortByTime(in []models.Schedule) []models.Schedule {
	out := make([]models.Schedule, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// SortByDateTime returns the schedules ordered by date, then time, both
// ascending and stable.
func SortByDateTime(in []models.Schedule) []models.Schedule {
	out := make([]models.Schedule, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// OnDate returns the schedules falling on the given date, sorted by time.
func OnDate(in []models.Schedule, date string) []models.Schedule {
	var filtered []models.Schedule
	for _, s := range in {
		if s.Date == date {
			filtered = append(filtered, s)
		}
	}
	return SortByTime(filtered)
}

// ActiveDays counts the distinct dates across the schedules.
func ActiveDays(in []models.Schedule) int {
	days := make(map[string]struct{}, len(in))
	for _, s := range in {
		days[s.Date] = struct{}{}
	}
	return len(days)
}

// CompletedCount counts the schedules marked completed.
func CompletedCount(in []models.Schedule) int {
	n := 0
	for _, s := range in {
		if s.Completed {
			n++
		}
	}
	return n
}

// Progress returns the completion ratio as a percentage rounded to the
// nearest integer. An empty input yields 0.
func Progress(in []models.Schedule) int {
	total := len(in)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(CompletedCount(in)) / float64(total) * 100))
}

// MonthMembership reports, for each day of the given month, whether any of
// the schedules falls on that date. Index 0 corresponds to day 1; the slice
// length is the number of days in the month.
func MonthMembership(in []models.Schedule, year int, month time.Month) []bool {
	dates := make(map[string]struct{}, len(in))
	for _, s := range in {
		dates[s.Date] = struct{}{}
	}

	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	out := make([]bool, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		_, out[day-1] = dates[date]
	}
	return out
}

// SortNotesNewestFirst returns the notes ordered by creation time, newest
// first, stable on equal timestamps.
func SortNotesNewestFirst(in []models.Note) []models.Note {
	out := make([]models.Note, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
