package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arvo-app/arvo/internal/common"
	"github.com/arvo-app/arvo/internal/derive"
	"github.com/arvo-app/arvo/internal/models"
)

// Calendar prints a month overview marking the days that have schedules.
// arg is an optional "yyyy-mm"; empty means the current month.
func (a *App) Calendar(ctx context.Context, arg string) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if arg != "" {
		t, err := time.Parse("2006-01", arg)
		if err != nil {
			printlnFn("Expected a month like 2026-03, got:", arg)
			return fmt.Errorf("%w: bad month %q", common.ErrValidation, arg)
		}
		year, month = t.Year(), t.Month()
	}

	list, err := a.schedules.ListForMonth(ctx, u.ID, year, month)
	if err != nil {
		printlnFn("Failed to load schedules:", err.Error())
		return err
	}

	membership := derive.MonthMembership(list, year, month)

	printlnFn(fmt.Sprintf("%s %d (%d schedules)", month, year, len(list)))
	printlnFn("Mo Tu We Th Fr Sa Su")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	// Monday-first column offset.
	offset := (int(first.Weekday()) + 6) % 7

	var row strings.Builder
	row.WriteString(strings.Repeat("   ", offset))
	for day := 1; day <= len(membership); day++ {
		cell := fmt.Sprintf("%2d", day)
		if membership[day-1] {
			cell = fmt.Sprintf("%2d", day) + "*"
		} else {
			cell += " "
		}
		row.WriteString(cell)
		if (offset+day)%7 == 0 {
			printlnFn(strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		printlnFn(strings.TrimRight(row.String(), " "))
	}
	printlnFn("* day with schedules; 'day <yyyy-mm-dd>' shows the details")
	return nil
}

// Day prints the schedules on one calendar date sorted by time.
func (a *App) Day(ctx context.Context, arg string) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	if _, err := time.Parse(models.DateLayout, arg); err != nil {
		printlnFn("Expected a date like 2026-03-01, got:", arg)
		return fmt.Errorf("%w: bad date %q", common.ErrValidation, arg)
	}

	list, err := a.schedules.ListOnDate(ctx, u.ID, arg)
	if err != nil {
		printlnFn("Failed to load schedules:", err.Error())
		return err
	}
	if len(list) == 0 {
		printlnFn("Nothing scheduled on", arg)
		return nil
	}

	printlnFn("Schedules on " + arg + ":")
	for i, s := range derive.SortByTime(list) {
		printScheduleLine(i, s)
	}
	return nil
}
