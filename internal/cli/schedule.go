package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/arvo-app/arvo/internal/common"
	"github.com/arvo-app/arvo/internal/derive"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/arvo-app/arvo/internal/services"
)

// listSchedules returns the user's schedules in the order they are shown to
// the user, so 1-based indexes typed at the prompt resolve consistently.
func (a *App) listSchedules(ctx context.Context, userID string) ([]models.Schedule, error) {
	list, err := a.schedules.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return derive.SortByDateTime(list), nil
}

// scheduleAt resolves a 1-based index argument to a concrete schedule.
func (a *App) scheduleAt(ctx context.Context, userID, arg string) (*models.Schedule, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		printlnFn("Expected a schedule number, got:", arg)
		return nil, fmt.Errorf("%w: bad index %q", common.ErrValidation, arg)
	}
	list, err := a.listSchedules(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n > len(list) {
		printlnFn(fmt.Sprintf("No schedule #%d (you have %d)", n, len(list)))
		return nil, fmt.Errorf("%w: index out of range", common.ErrValidation)
	}
	return &list[n-1], nil
}

func printScheduleLine(i int, s models.Schedule) {
	mark := " "
	if s.Completed {
		mark = "x"
	}
	printlnFn(fmt.Sprintf("%3d. [%s] %s %s  %-12s %s", i+1, mark, s.Date, s.Time, s.Type, s.Title))
	if s.Description != "" {
		printlnFn("        " + s.Description)
	}
}

// Today prints the current day's agenda sorted by time.
func (a *App) Today(ctx context.Context) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	list, err := a.schedules.ListToday(ctx, u.ID)
	if err != nil {
		printlnFn("Failed to load schedules:", err.Error())
		return err
	}
	if len(list) == 0 {
		printlnFn("Nothing scheduled today")
		return nil
	}

	printlnFn("Today's agenda:")
	for i, s := range derive.SortByTime(list) {
		printScheduleLine(i, s)
	}
	return nil
}

// Schedules prints all the user's schedules sorted by date and time.
func (a *App) Schedules(ctx context.Context) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	list, err := a.listSchedules(ctx, u.ID)
	if err != nil {
		printlnFn("Failed to load schedules:", err.Error())
		return err
	}
	if len(list) == 0 {
		printlnFn("No schedules yet. Try 'addschedule'.")
		return nil
	}
	for i, s := range list {
		printScheduleLine(i, s)
	}
	return nil
}

// AddSchedule interactively collects the schedule fields and stores it.
func (a *App) AddSchedule(ctx context.Context) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	timeStr, err := getSimpleText(a.reader, "Time (HH:MM)", os.Stdout)
	if err != nil {
		return err
	}
	typ, err := getSimpleText(a.reader, "Type (class, organization, assignment, personal)", os.Stdout)
	if err != nil {
		return err
	}
	desc, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.schedules.Add(ctx, services.AddScheduleParams{
		UserID:      u.ID,
		Title:       title,
		Date:        date,
		Time:        timeStr,
		Type:        models.ScheduleType(typ),
		Description: desc,
	})
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn(err.Error())
		} else {
			printlnFn("Failed to add schedule:", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Added %q on %s at %s", s.Title, s.Date, s.Time))
	return nil
}

// Done marks the n-th listed schedule as completed.
func (a *App) Done(ctx context.Context, arg string) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	s, err := a.scheduleAt(ctx, u.ID, arg)
	if err != nil {
		return err
	}
	if err := a.schedules.SetCompleted(ctx, s.ID, true); err != nil {
		printlnFn("Failed to update schedule:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Completed %q", s.Title))
	return nil
}

// EditSchedule interactively edits the n-th listed schedule. Empty answers
// keep the current value.
func (a *App) EditSchedule(ctx context.Context, arg string) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	s, err := a.scheduleAt(ctx, u.ID, arg)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Editing %q (leave a field empty to keep it)", s.Title))

	var patch models.SchedulePatch
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", s.Title), os.Stdout); err != nil {
		return err
	} else if v != "" {
		patch.Title = &v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Date [%s]", s.Date), os.Stdout); err != nil {
		return err
	} else if v != "" {
		patch.Date = &v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Time [%s]", s.Time), os.Stdout); err != nil {
		return err
	} else if v != "" {
		patch.Time = &v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Type [%s]", s.Type), os.Stdout); err != nil {
		return err
	} else if v != "" {
		t := models.ScheduleType(v)
		if !t.Valid() {
			printlnFn("Unknown schedule type:", v)
			return fmt.Errorf("%w: unknown schedule type %q", common.ErrValidation, v)
		}
		patch.Type = &t
	}
	if v, err := getSimpleText(a.reader, "Description", os.Stdout); err != nil {
		return err
	} else if v != "" {
		patch.Description = &v
	}

	if err := a.schedules.Update(ctx, s.ID, patch); err != nil {
		printlnFn("Failed to update schedule:", err.Error())
		return err
	}
	printlnFn("Updated")
	return nil
}

// DelSchedule deletes the n-th listed schedule.
func (a *App) DelSchedule(ctx context.Context, arg string) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	s, err := a.scheduleAt(ctx, u.ID, arg)
	if err != nil {
		return err
	}
	if err := a.schedules.Delete(ctx, s.ID); err != nil {
		printlnFn("Failed to delete schedule:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Deleted %q", s.Title))
	return nil
}

// Stats prints completion statistics across all the user's schedules.
func (a *App) Stats(ctx context.Context) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	list, err := a.schedules.ListByUser(ctx, u.ID)
	if err != nil {
		printlnFn("Failed to load schedules:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Schedules:   %d", len(list)))
	printlnFn(fmt.Sprintf("Completed:   %d", derive.CompletedCount(list)))
	printlnFn(fmt.Sprintf("Progress:    %d%%", derive.Progress(list)))
	printlnFn(fmt.Sprintf("Active days: %d", derive.ActiveDays(list)))
	return nil
}
