package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleType_Valid(t *testing.T) {
	for _, v := range []ScheduleType{ScheduleTypeClass, ScheduleTypeOrganization, ScheduleTypeAssignment, ScheduleTypePersonal} {
		assert.True(t, v.Valid(), "%s should be valid", v)
	}
	assert.False(t, ScheduleType("meeting").Valid())
	assert.False(t, ScheduleType("").Valid())
}

func TestNoteCategory_Valid(t *testing.T) {
	for _, v := range []NoteCategory{NoteCategoryClass, NoteCategoryOrganization, NoteCategoryPersonal, NoteCategoryOther} {
		assert.True(t, v.Valid(), "%s should be valid", v)
	}
	assert.False(t, NoteCategory("misc").Valid())
}

func TestSchedule_StartsAt(t *testing.T) {
	s := &Schedule{Date: "2026-03-15", Time: "09:30"}

	at, err := s.StartsAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC), at)

	bad := &Schedule{Date: "2026-03-15", Time: "later"}
	_, err = bad.StartsAt(time.UTC)
	require.Error(t, err)
}

func TestSchedulePatch_Apply_KeepsUnsetFields(t *testing.T) {
	s := Schedule{
		ID:          "s1",
		Title:       "Algebra",
		Date:        "2026-03-15",
		Time:        "09:00",
		Type:        ScheduleTypeClass,
		Description: "room 12",
		Completed:   false,
		Notified:    true,
	}

	title := "Linear Algebra"
	done := true
	SchedulePatch{Title: &title, Completed: &done}.Apply(&s)

	assert.Equal(t, "Linear Algebra", s.Title)
	assert.True(t, s.Completed)
	// everything else untouched
	assert.Equal(t, "2026-03-15", s.Date)
	assert.Equal(t, "09:00", s.Time)
	assert.Equal(t, ScheduleTypeClass, s.Type)
	assert.Equal(t, "room 12", s.Description)
	assert.True(t, s.Notified)
}

func TestUser_Clone_IsIndependentCopy(t *testing.T) {
	u := &User{ID: "u1", Name: "Alice"}
	c := u.Clone()
	c.Name = "Bob"
	assert.Equal(t, "Alice", u.Name)
}
